/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

// Package esignet-rest is the identity binding and credential issuance REST API.
package main

import (
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/mosip/esignet-go/cmd/esignet-rest/startcmd"
)

var logger = log.New("esignet-rest")

func main() {
	rootCmd := &cobra.Command{
		Use: "esignet-rest",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	rootCmd.AddCommand(startcmd.GetStartCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to run esignet-rest", log.WithError(err))
	}
}
