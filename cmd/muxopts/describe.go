package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	opts "github.com/goliatone/go-muxopts"
	"github.com/goliatone/go-muxopts/schema/openapi"
	"github.com/urfave/cli/v3"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func (a *app) describeOptionsCommand() *cli.Command {
	return &cli.Command{
		Name:                   "describe-options",
		Usage:                  "Describe the options declared for a scope",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "server", Aliases: []string{"s"}, Usage: "Describe server options"},
			&cli.BoolFlag{Name: "window", Aliases: []string{"w"}, Usage: "Describe window options"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "table", Usage: "Output format (table, descriptors, openapi)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			kind := opts.ScopeSession
			switch {
			case cmd.Bool("server"):
				kind = opts.ScopeServer
			case cmd.Bool("window"):
				kind = opts.ScopeWindow
			}

			var extra []opts.Option
			format := strings.ToLower(cmd.String("format"))
			switch format {
			case "table", "descriptors":
			case "openapi":
				extra = append(extra, openapi.Option())
			default:
				return fmt.Errorf("describe-options: unknown format %q", format)
			}

			engine, err := a.engine(ctx, cmd, extra...)
			if err != nil {
				return err
			}
			doc, err := engine.DescribeTable(kind)
			if err != nil {
				return err
			}
			if format == "table" {
				return a.renderTable(doc)
			}
			encoder := json.NewEncoder(a.stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(doc)
		},
	}
}

func (a *app) renderTable(doc opts.SchemaDocument) error {
	descriptors, ok := doc.Document.([]opts.FieldDescriptor)
	if !ok {
		return fmt.Errorf("describe-options: unexpected document %T", doc.Document)
	}
	rows := make([][]string, 0, len(descriptors))
	for _, field := range descriptors {
		rows = append(rows, []string{field.Path, field.Type, field.Default, describeValues(field)})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "TYPE", "DEFAULT", "VALUES").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(a.stdout, t.Render())
	return err
}

func describeValues(field opts.FieldDescriptor) string {
	switch {
	case len(field.Choices) > 0:
		return strings.Join(field.Choices, "|")
	case field.Minimum != nil && field.Maximum != nil:
		return strconv.FormatInt(*field.Minimum, 10) + ".." + strconv.FormatInt(*field.Maximum, 10)
	default:
		return ""
	}
}
