// efile assembles sample filings and submits them to the filing gateway.
//
//	efile [flags] validate <sample>
//	efile [flags] encode <sample>
//	efile [flags] submit <sample>
//	efile [flags] status <submission-id>
//
// Samples: charge, llp, company, officer, psc.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/gartstein/efiling/internal/filing/client"
	"github.com/gartstein/efiling/internal/filing/codec"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/filing/samples"
	"github.com/gartstein/efiling/internal/filing/transport"
	"github.com/gartstein/efiling/internal/filing/validator"
	"go.uber.org/zap"
)

var builders = map[string]func(time.Time) models.Filing{
	"charge":  func(t time.Time) models.Filing { return samples.ChargeRegistration(t) },
	"llp":     func(t time.Time) models.Filing { return samples.LLPIncorporation(t) },
	"company": func(t time.Time) models.Filing { return samples.CompanyIncorporation(t) },
	"officer": func(t time.Time) models.Filing { return samples.OfficerAppointment(t) },
	"psc":     func(t time.Time) models.Filing { return samples.PSCNotification(t) },
}

type options struct {
	address    string
	token      string
	tls        bool
	timeout    time.Duration
	minimumAge int
}

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, logger *zap.Logger) error {
	var opts options
	fs := flag.NewFlagSet("efile", flag.ContinueOnError)
	fs.StringVar(&opts.address, "addr", "localhost:50051", "gateway gRPC address")
	fs.StringVar(&opts.token, "token", os.Getenv("EFILING_TOKEN"), "bearer token")
	fs.BoolVar(&opts.tls, "tls", false, "use TLS")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall deadline")
	fs.IntVar(&opts.minimumAge, "min-age", validator.DefaultMinimumAge, "minimum officer age in years")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: efile [flags] validate|encode|submit <sample> | status <submission-id>")
	}
	cmd, arg := fs.Arg(0), fs.Arg(1)

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	v := validator.New(validator.WithMinimumAge(opts.minimumAge))
	switch cmd {
	case "validate":
		f, err := sample(arg)
		if err != nil {
			return err
		}
		return printJSON(out, v.ValidateAsOf(f, time.Now().UTC()))
	case "encode":
		f, err := sample(arg)
		if err != nil {
			return err
		}
		b, err := codec.Encode(f)
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	case "submit":
		f, err := sample(arg)
		if err != nil {
			return err
		}
		t, err := dial(opts, logger)
		if err != nil {
			return err
		}
		defer t.Close()
		receipt, err := client.NewSubmitter(t, v, logger).Submit(ctx, f)
		if err != nil {
			return err
		}
		return printJSON(out, receipt)
	case "status":
		t, err := dial(opts, logger)
		if err != nil {
			return err
		}
		defer t.Close()
		st, err := t.GetSubmission(ctx, arg)
		if err != nil {
			return err
		}
		return printJSON(out, map[string]any{
			"submission_id": st.SubmissionID,
			"reference_id":  st.ReferenceID,
			"filing_type":   st.FilingType.String(),
			"status":        st.Status.String(),
			"rejections":    st.Rejections,
		})
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// sample builds the named sample filing signed today.
func sample(name string) (models.Filing, error) {
	build, ok := builders[name]
	if !ok {
		names := make([]string, 0, len(builders))
		for n := range builders {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown sample %q, want one of %v", name, names)
	}
	return build(time.Now().UTC()), nil
}

func dial(opts options, logger *zap.Logger) (*transport.Client, error) {
	return transport.Dial(transport.Config{
		Address:    opts.address,
		Token:      opts.token,
		TLS:        opts.tls,
		MaxElapsed: opts.timeout,
	}, logger)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
