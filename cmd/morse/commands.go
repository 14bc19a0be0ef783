package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/kumarlokesh/morse-tree/internal/morse"
	"github.com/kumarlokesh/morse-tree/internal/tableio"
)

func newEncodeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "encode [text...]",
		Short:   "Translate text to code groups",
		Example: `morse encode "Hello World"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := opts.load(cmd)
			if err != nil {
				return err
			}
			text, err := input(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			coded, err := codec.Encode(text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), coded)
			return nil
		},
	}
}

func newDecodeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "decode [code...]",
		Short:   "Translate code groups back to text",
		Long:    `Code groups are separated by one space and words by two. Quote the argument to keep word gaps.`,
		Example: `morse decode ".... ..  - .... . .-. ."`,
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := opts.load(cmd)
			if err != nil {
				return err
			}
			code, err := input(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			text, err := codec.Decode(code)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newTreeCmd(opts *rootOptions) *cobra.Command {
	var snapshot, payloadCodec string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the code tree, or write it as a binary snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			payloads, err := morse.PayloadCodec(payloadCodec)
			if err != nil {
				return err
			}
			codec, err := opts.load(cmd)
			if err != nil {
				return err
			}
			tree := codec.Tree()

			if snapshot != "" {
				data, err := morse.MarshalTreeWith(tree, payloads)
				if err != nil {
					return err
				}
				if err := os.WriteFile(snapshot, data, 0o644); err != nil {
					return fmt.Errorf("failed to write snapshot: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("wrote %d nodes (%d bytes) to %s", tree.Size(), len(data), snapshot))
				return nil
			}

			// The dump stays plain so it can be parsed back.
			fmt.Fprint(cmd.OutOrStdout(), morse.Dump(tree))
			return nil
		},
	}
	cmd.Flags().StringVarP(&snapshot, "snapshot", "o", "", "write a binary snapshot to this file instead of printing")
	cmd.Flags().StringVar(&payloadCodec, "payload-codec", "cbor", "snapshot payload encoding: cbor or msgpack")
	return cmd
}

func newTableCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "table",
		Short:   "Print the code table, optionally converting its format",
		Example: `morse table --table letter.txt --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := tableio.ParseFormat(format)
			if err != nil {
				return err
			}
			codec, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return tableio.Write(cmd.OutOrStdout(), codec.Table(), f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(tableio.FormatText), "output format: text, json, yaml, cbor or msgpack")
	return cmd
}

const demoMessage = "Hello World"

func newDemoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Encode and decode \"" + demoMessage + "\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := opts.load(cmd)
			if err != nil {
				return err
			}
			coded, err := codec.Encode(demoMessage)
			if err != nil {
				return err
			}
			decoded, err := codec.Decode(coded)
			if err != nil {
				return err
			}

			out, err := pterm.DefaultTable.WithData(pterm.TableData{
				{"Message", demoMessage},
				{"Coded message", coded},
				{"Decoded message", decoded},
			}).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
