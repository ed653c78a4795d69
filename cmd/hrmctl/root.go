package main

import (
	"hrm_records_go/internal/app"
	"hrm_records_go/internal/config"
	"hrm_records_go/pkg/log"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "hrmctl",
		Short:         "Maintenance tool for the organizational records database",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(opts.configPath, &opts.cfg); err != nil {
				return err
			}
			log.Init(opts.cfg.Log.Level, opts.cfg.Log.Format, opts.cfg.Log.OutputPath)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "configs/config.yaml", "path to config file")

	root.AddCommand(
		newExportCmd(opts),
		newImportCmd(opts),
		newResetCmd(opts),
		newBackupCmd(opts),
		newRestoreCmd(opts),
		newRenumberCmd(opts),
	)
	return root
}

// withApp 打开应用资源执行 fn，结束后关闭。
func (o *rootOptions) withApp(fn func(a *app.App) error) error {
	a, err := app.New(o.cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
