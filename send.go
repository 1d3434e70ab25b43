package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fcmrelay/appconfig"
	"fcmrelay/fcm"
)

func newSendCmd() *cobra.Command {
	var req fcm.NotificationRequest
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one notification to a device token using the environment configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.ReceiverToken == "" || req.Title == "" || req.Body == "" {
				return fmt.Errorf("--token, --title and --body are required")
			}

			_, log, err := startup()
			if err != nil {
				return err
			}
			defer log.Sync()

			result, err := fcm.NewRelay(log).Dispatch(cmd.Context(), appconfig.Load(), req)
			if err != nil {
				return err
			}
			log.Info("FCM responded", zap.Int("status", result.StatusCode))

			out := result.Body
			if json.Valid(out) {
				var pretty any
				if err := json.Unmarshal(out, &pretty); err == nil {
					out, _ = json.MarshalIndent(pretty, "", "  ")
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			if !result.OK() {
				return fmt.Errorf("FCM responded with status %d", result.StatusCode)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.ReceiverToken, "token", "", "FCM registration token of the receiving device")
	cmd.Flags().StringVar(&req.Title, "title", "", "notification title")
	cmd.Flags().StringVar(&req.Body, "body", "", "notification body")
	cmd.Flags().StringToStringVar(&req.Data, "data", nil, "data payload as key=value pairs")
	return cmd
}
