package commands

import (
	"fmt"

	"git.home.luguber.info/inful/assetbuild/internal/verify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Output string `short:"o" name:"output" help:"Override output_dir"`
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if v.Output != "" {
		cfg.OutputDir = v.Output
	}

	res, err := verify.Verify(cfg.OutputDir, cfg.Page.Output, cfg.StaticPrefix)
	if res != nil {
		if res.BuildStamp != "" {
			_, _ = fmt.Fprintf(g.Stdout, "%-8s %s\n", "build", res.BuildStamp)
		}
		missing := make(map[string]bool, len(res.Missing))
		for _, m := range res.Missing {
			missing[m.URL] = true
		}
		for _, ref := range res.Checked {
			status := "ok"
			if missing[ref.URL] {
				status = "missing"
			}
			_, _ = fmt.Fprintf(g.Stdout, "%-8s %s\n", status, ref.URL)
		}
	}
	return err
}
