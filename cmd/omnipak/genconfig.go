package omnipak

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/omnipak/pkg/config"
	"github.com/arthur-debert/omnipak/pkg/errors"
	"github.com/arthur-debert/omnipak/pkg/paths"
)

func newGenConfigCmd() *cobra.Command {
	var (
		executable string
		write      bool
		force      bool
		target     string
	)
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if executable != "" {
				if abs, err := filepath.Abs(executable); err == nil {
					executable = abs
				}
			}
			data, err := config.Generate(executable)
			if err != nil {
				return err
			}
			if !write {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			if target == "" {
				target = filepath.Join(paths.ConfigDir(), config.FileName)
			}
			if _, err := os.Stat(target); err == nil && !force {
				return errors.Newf(errors.ErrInvalidInput, MsgConfigExists, target)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrap(err, errors.ErrDirCreate, "cannot create config directory").
					WithDetail("path", target)
			}
			if err := os.WriteFile(target, data, 0644); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "cannot write config file").
					WithDetail("path", target)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&executable, "executable", "e", "", MsgFlagExecutable)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().StringVarP(&target, "output", "o", "", "File to write with -w (default: user config directory)")
	return cmd
}
