// Package prometheus exports benchmark metrics through
// prometheus/client_golang.
//
//	reg := prom.NewRegistry()
//	mc, err := prometheus.New(reg)
//	if err != nil {
//	    return err
//	}
//	runner := vecbench.NewRunner(cfg, vecbench.WithMetricsCollector(mc))
//	report, _ := runner.Run(ctx, ds)
//	mc.ObserveReport(report)
//	prom.WriteToTextfile("vecbench.prom", reg)
package prometheus
