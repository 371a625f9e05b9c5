package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/evmauth/pkg/evmauth"
)

type recordView struct {
	Name      string `json:"name"`
	Expected  string `json:"expected"`
	Verdict   string `json:"verdict"`
	Reason    string `json:"reason,omitempty"`
	Recovered string `json:"recovered,omitempty"`
	Error     string `json:"error,omitempty"`
}

type reportView struct {
	Records  []recordView `json:"records"`
	Accepted int          `json:"accepted"`
	Rejected int          `json:"rejected"`
}

func newVerifyBatchCmd(a *app) *cobra.Command {
	var format string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "verify-batch <file>",
		Short: "Authorize every signature record in a JSON or CSV file",
		Long: `Check a file of signature records in parallel.

Each record carries a digest, a signature (compact, or r/s/v encoded with the
configured --recovery-base) and optionally its signer. --expected overrides
the per-record signer. Exits non-zero when any record is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			source := args[0]

			parser, err := parserFor(format, source)
			if err != nil {
				return err
			}

			client := evmauth.NewClient().
				WithCodec(a.cfg.Codec()).
				WithParser(parser).
				WithBatchConfig(a.cfg.BatchConfig(a.logger))

			if a.cfg.Cache.Enabled {
				cache, err := evmauth.NewVerdictCache(ctx, a.cfg.CacheConfig())
				if err != nil {
					return err
				}
				defer func() {
					stats := cache.Stats()
					a.logger.Debug().Int64("hits", stats.Hits).Int64("misses", stats.Misses).Msg("verdict cache")
					_ = cache.Close()
				}()
				client = client.WithCache(cache)
			}

			var expected *evmauth.Address
			if a.cfg.Expected != "" {
				addr, err := a.cfg.ExpectedAddress()
				if err != nil {
					return err
				}
				expected = &addr
			}

			report, err := client.VerifyFile(ctx, source, expected)
			if err != nil {
				return err
			}
			a.logger.Info().
				Str("file", source).
				Int("accepted", report.Accepted).
				Int("rejected", report.Rejected).
				Msg("batch verified")

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(newReportView(report)); err != nil {
					return err
				}
			} else {
				for _, res := range report.Results {
					printDecision(out, res.Name, res.Decision)
				}
				fmt.Fprintf(out, "\nAccepted: %d, Rejected: %d\n", report.Accepted, report.Rejected)
			}

			if report.Rejected > 0 {
				return ErrRejected
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "record file format (json|csv); detected from the extension when empty")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	return cmd
}

func parserFor(format, source string) (evmauth.SignatureParser, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(source)), ".")
	}
	switch format {
	case "json":
		return &evmauth.JSONParser{}, nil
	case "csv":
		return &evmauth.CSVParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported record format %q", format)
	}
}

func newReportView(report *evmauth.Report) reportView {
	view := reportView{
		Records:  make([]recordView, 0, len(report.Results)),
		Accepted: report.Accepted,
		Rejected: report.Rejected,
	}
	for _, res := range report.Results {
		rv := recordView{
			Name:     res.Name,
			Expected: res.Expected.Hex(),
			Verdict:  res.Decision.Verdict.String(),
		}
		if !res.Decision.Accepted() {
			rv.Reason = res.Decision.Reason.String()
		}
		if !res.Decision.Recovered.IsZero() {
			rv.Recovered = res.Decision.Recovered.Hex()
		}
		if res.Decision.Err != nil {
			rv.Error = res.Decision.Err.Error()
		}
		view.Records = append(view.Records, rv)
	}
	return view
}
