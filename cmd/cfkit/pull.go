package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rodriguescarson/cfkit/internal/pull"
)

func newPullCmd(a *app) *cobra.Command {
	var dir, templateFile string

	cmd := &cobra.Command{
		Use:   "pull <contest-id>",
		Short: "Create a local workspace with sample tests for a contest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contestID, err := strconv.Atoi(args[0])
			if err != nil || contestID <= 0 {
				return fmt.Errorf("invalid contest id %q", args[0])
			}
			if err := a.load(cmd); err != nil {
				return err
			}

			if !cmd.Flags().Changed("dir") {
				dir = a.cfg.Pull.Dir
			}
			if !cmd.Flags().Changed("template") {
				templateFile = a.cfg.Pull.TemplateFile
			}

			opts := []pull.Option{pull.WithLogger(a.logger)}
			if templateFile != "" {
				tpl, err := pull.LoadTemplate(templateFile)
				if err != nil {
					return err
				}
				opts = append(opts, pull.WithTemplate(tpl))
			}

			res, err := pull.New(a.client(), dir, opts...).Pull(cmd.Context(), contestID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Contest %d -> %s\n", res.ContestID, res.Dir)
			for _, p := range res.Problems {
				status := fmt.Sprintf("%d samples", p.Samples)
				if p.Err != nil {
					status = "samples unavailable: " + p.Err.Error()
				}
				fmt.Fprintf(out, "  %-3s %-40s %s\n", p.Index, p.Name, status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "workspace root (default from config)")
	cmd.Flags().StringVar(&templateFile, "template", "", "solution template file")
	return cmd
}
