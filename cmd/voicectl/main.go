// Command voicectl talks to a running speech_proxy from the shell.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/speech_proxy/internal/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type endpoints struct {
	baseURL string
	sttPath string
	ttsPath string
}

func (e *endpoints) client() *client.Client {
	return client.New(e.baseURL+e.sttPath, e.baseURL+e.ttsPath)
}

func newRootCmd() *cobra.Command {
	ep := &endpoints{}

	root := &cobra.Command{
		Use:          "voicectl",
		Short:        "Speech-to-text and text-to-speech from the command line",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&ep.baseURL, "url", "http://localhost:8080", "speech_proxy base URL")
	root.PersistentFlags().StringVar(&ep.sttPath, "stt-path", "/stt", "speech-to-text path (server STT_PATH)")
	root.PersistentFlags().StringVar(&ep.ttsPath, "tts-path", "/tts", "text-to-speech path (server TTS_PATH)")

	root.AddCommand(newTranscribeCmd(ep), newSynthesizeCmd(ep))
	return root
}

func newTranscribeCmd(ep *endpoints) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe FILE",
		Short: "Transcribe an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read audio file: %w", err)
			}

			res, err := ep.client().Transcribe(context.Background(), audio)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", res.Language, res.Text)
			return nil
		},
	}
}

func newSynthesizeCmd(ep *endpoints) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "synthesize TEXT",
		Short: "Synthesize speech into a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			audio, err := ep.client().Synthesize(context.Background(), args[0])
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, audio, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s to %s\n", humanize.Bytes(uint64(len(audio))), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "speech.wav", "output file")
	return cmd
}
