package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/HTTPArchive/tech-report-apis/v1/catalog"
	"github.com/HTTPArchive/tech-report-apis/v1/query"
)

func newTranslateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <endpoint> [key=value ...]",
		Short: "Print the query an endpoint would run for a parameter set",
		Long: `Print the query an endpoint would run for a parameter set, without
touching storage. start=latest is left unresolved.

Examples:
  techreport translate adoption technology=WordPress,Drupal geo=ALL rank=ALL
  techreport translate technologies category=CMS onlyname=`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := translate(args[0], args[1:])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

type translation struct {
	Endpoint string                  `json:"endpoint"`
	Query    *query.QuerySpec        `json:"query,omitempty"`
	Errors   []query.ValidationError `json:"errors,omitempty"`
}

func translate(name string, pairs []string) ([]byte, error) {
	endpoint, ok := catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown endpoint %q, expected one of: %s", name, strings.Join(catalog.Names(), ", "))
	}

	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		if _, dup := values[key]; !dup {
			values[key] = value
		}
	}

	out := translation{Endpoint: endpoint.Name}
	spec, errs := endpoint.Plan(query.ParametersFromMap(values))
	if len(errs) > 0 {
		out.Errors = errs
	} else {
		out.Query = &spec
	}
	return json.MarshalIndent(out, "", "  ")
}
