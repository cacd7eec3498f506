package advice

// adviseLocal classifies results for the local category (local-network,
// local-dns). These checks are binary and any failure is a show-stopper, so
// FAIL always maps to URGENT. There is no PUNT path for local checks.
func adviseLocal(item ItemResult) Assessment {
	if a, ok := directMessage(item); ok {
		return a
	}

	severity := localSeverity(item.Result)
	return Assessment{
		Severity: severity,
		Content:  contentFor(CategoryLocal, item.Command, severity, ""),
		Result:   item.Result,
	}
}

func localSeverity(tag ResultTag) Severity {
	if tag == ResultFail {
		return SeverityUrgent
	}
	return baseSeverity(tag)
}
