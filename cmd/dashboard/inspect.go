package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dvmian56/dashboard-control-anglo/internal/config"
	"github.com/Dvmian56/dashboard-control-anglo/internal/contract"
	"github.com/Dvmian56/dashboard-control-anglo/internal/dashboard"
	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
	"github.com/Dvmian56/dashboard-control-anglo/internal/report"
)

var (
	inspectContract string
	inspectJSON     bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "在终端输出当前看板视图",
	Long:  `加载报表目录中最新的 Docs / Flujo / Historial 报表，按合同过滤后输出视图。`,
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectContract, "contrato", contract.All, "合同筛选 (默认 Todos)")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "以 JSON 输出")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, _ := loadConfig()
	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	dir, err := filepath.Abs(cfg.Data.ReportDir)
	if err != nil {
		return fmt.Errorf("resolve report dir: %w", err)
	}

	loader := report.NewLoader(dir, report.WithLogger(log.Named("report")))
	svc := dashboard.NewService(loader, keywords(cfg.Reports), nil, log.Named("dashboard"))
	snap := svc.Snapshot(context.Background())
	view := dashboard.Build(snap.Reports, inspectContract)

	out := cmd.OutOrStdout()
	if inspectJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	printView(out, dir, snap, view)
	return nil
}

func keywords(r config.ReportsConfig) dashboard.Keywords {
	return dashboard.Keywords{Docs: r.Docs, Flujo: r.Flujo, Historial: r.Historial}
}

func printView(w io.Writer, dir string, snap dashboard.Snapshot, view dashboard.View) {
	fmt.Fprintf(w, "Carpeta: %s\n", dir)
	for _, kind := range model.ReportKinds {
		res := snap.Results[kind]
		switch {
		case res.Found:
			fmt.Fprintf(w, "  %-10s %s (%d filas)\n", kind, res.File.Name, res.Report.Len())
		case res.File != nil:
			fmt.Fprintf(w, "  %-10s %s (error: %v)\n", kind, res.File.Name, res.Err)
		default:
			fmt.Fprintf(w, "  %-10s -\n", kind)
		}
	}
	fmt.Fprintln(w)

	if !view.Ready {
		fmt.Fprintln(w, view.Message)
		return
	}

	fmt.Fprintf(w, "Contrato: %s (opciones: %s)\n", view.Selected, strings.Join(view.Contracts, ", "))
	for _, m := range view.General.Metrics {
		fmt.Fprintf(w, "  %-22s %d\n", m.Label, m.Value)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estado de Documentos:")
	for _, s := range view.General.StatusChart {
		fmt.Fprintf(w, "  %-22s %d\n", s.Name, s.Count)
	}

	for _, p := range []dashboard.Panel{view.Flujo, view.Historial} {
		fmt.Fprintln(w)
		if !p.Available {
			fmt.Fprintln(w, p.Message)
			continue
		}
		fmt.Fprintf(w, "%s: %d filas\n", p.Title, len(p.Table.Rows))
	}
}
