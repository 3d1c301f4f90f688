package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/omnipak/cmd/omnipak"
	"github.com/arthur-debert/omnipak/pkg/errors"
)

func main() {
	rootCmd := omnipak.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Str("code", string(errors.GetErrorCode(err))).
			Fields(errors.GetErrorDetails(err)).
			Msg("Command failed")

		fmt.Fprintln(os.Stderr, omnipak.FormatError(err))
		os.Exit(1)
	}
}
