package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/costmo/validpoint/internal/advice"
	"github.com/costmo/validpoint/internal/config"
	"github.com/costmo/validpoint/internal/runner"
)

// checkShorts is the help text for each check command.
var checkShorts = map[string]string{
	advice.CmdLocalNetwork:   "Verify this machine can reach the internet",
	advice.CmdLocalDNS:       "Verify this machine can resolve names",
	advice.CmdHTTPPort:       "Time TCP connections to the website's HTTP port",
	advice.CmdHTTPSPort:      "Time TCP connections to the website's HTTPS port",
	advice.CmdDomain:         "Survey the domain's DNS records and registration expiry",
	advice.CmdHTTPResponse:   "Check the website's HTTP response",
	advice.CmdHTTPSResponse:  "Check the website's HTTPS response",
	advice.CmdWebsite:        "Check HTTP port and response together",
	advice.CmdSecureWebsite:  "Check HTTPS port and response together",
	advice.CmdWebsiteContent: "Render the home page and inspect its markup",
}

func addCheckCommands(root *cobra.Command) {
	for _, name := range advice.ValidCommands {
		name := name
		root.AddCommand(&cobra.Command{
			Use:   name,
			Short: checkShorts[name],
			RunE: func(cmd *cobra.Command, args []string) error {
				return runChecks(cmd, []string{name})
			},
		})
	}

	root.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Run the default set of checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(cmd, advice.DefaultCommands)
		},
	})
}

func runChecks(cmd *cobra.Command, commands []string) error {
	domains := config.ParseDomains(domainInput)
	if len(domains) == 0 {
		return fmt.Errorf("at least one domain is required (use --domain)")
	}

	r := runner.New(logger)
	if !quiet && len(domains) == 1 {
		r.OnStep = printStep
	}

	multi := &runner.Multi{
		Runner:       r,
		Concurrency:  concurrency,
		RateLimit:    rateLimit,
		ConfigDir:    configDir,
		StripResults: !rawOutput,
	}

	var progress *progressPrinter
	if !quiet && len(domains) > 1 {
		progress = newProgressPrinter(len(domains))
		progress.Start()
		multi.OnDomain = func(res runner.DomainResult) {
			progress.Increment(res.Err == nil && res.Report.GreatestSeverity <= advice.SeverityOK)
		}
	}

	results := multi.RunDomains(cmd.Context(), domains, commands)
	if progress != nil {
		progress.Stop()
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", colorUrgent("error"), res.Domain, res.Err)
			continue
		}
		if asJSON {
			printReportJSON(res.Report)
		} else {
			printReport(res.Report)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d domains could not be tested", failed, len(results))
	}
	return nil
}

func printStep(command string, item advice.ItemResult) {
	line := fmt.Sprintf("  %-16s %s", command, formatResult(item.Result))
	if item.ResponseTime >= 0 {
		line += fmt.Sprintf(" (%.0fms)", item.ResponseTime)
	}
	fmt.Println(line)
}

func printReportJSON(report advice.Report) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "encode report: %v\n", err)
	}
}

func printReport(report advice.Report) {
	severity := report.GreatestSeverity
	fmt.Printf("%s %s\n", colorHeader(report.Domain+":"), formatSeverity(severity))

	if len(report.TestResult.Actions) == 0 {
		fmt.Println("  No action needed.")
		return
	}
	for _, action := range report.TestResult.Actions {
		fmt.Printf("  %s %s\n", formatSeverity(action.Severity), action.Command)
		fmt.Printf("    %s\n", action.Content)
	}
}
