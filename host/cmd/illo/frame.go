package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"illo/protocol"
)

func newFrameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Encode and decode sync frame tokens",
	}
	cmd.AddCommand(newFrameDecodeCommand())
	cmd.AddCommand(newFrameEncodeCommand())
	return cmd
}

func newFrameDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token>",
		Short: "Pick apart an advertisement token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := protocol.Decode(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("seq %d\n", f.Seq)
			for i, tr := range f.Triples {
				if tr.Intensity == 0 {
					fmt.Printf("  triple %d: dark\n", i+1)
					continue
				}
				fmt.Printf("  triple %d: pixel %d, intensity %d, %s\n",
					i+1, tr.Position, tr.Intensity, colorName(tr.Color))
			}
			return nil
		},
	}
}

func newFrameEncodeCommand() *cobra.Command {
	var (
		seq     uint8
		triples []string
	)
	cmd := &cobra.Command{
		Use:     "encode",
		Short:   "Build an advertisement token",
		Example: "  illo frame encode --seq 7 --triple 0,255,2 --triple 5,128,1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(triples) > protocol.FrameTriples {
				return fmt.Errorf("at most %d triples fit a frame", protocol.FrameTriples)
			}
			f := protocol.VisualFrame{Seq: seq}
			for i, spec := range triples {
				tr, err := parseTriple(spec)
				if err != nil {
					return err
				}
				f.Triples[i] = tr
			}
			fmt.Println(protocol.Encode(f))
			return nil
		},
	}
	cmd.Flags().Uint8Var(&seq, "seq", 0, "sequence number, 0-255")
	cmd.Flags().StringArrayVar(&triples, "triple", nil, "pixel,intensity,color triple, repeatable")
	return cmd
}

func parseTriple(spec string) (protocol.Triple, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return protocol.Triple{}, fmt.Errorf("triple %q: want pixel,intensity,color", spec)
	}
	pos, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 8)
	if err != nil || pos >= protocol.NumPixels {
		return protocol.Triple{}, fmt.Errorf("triple %q: pixel must be 0-%d", spec, protocol.NumPixels-1)
	}
	inten, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 8)
	if err != nil {
		return protocol.Triple{}, fmt.Errorf("triple %q: intensity must be 0-%d", spec, protocol.MaxIntensity)
	}
	col, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 8)
	if err != nil || col > protocol.MaxColorType {
		return protocol.Triple{}, fmt.Errorf("triple %q: color must be 0-%d", spec, protocol.MaxColorType)
	}
	return protocol.Triple{
		Position:  uint8(pos),
		Intensity: uint8(inten),
		Color:     protocol.ColorType(col),
	}, nil
}

func colorName(c protocol.ColorType) string {
	switch c {
	case protocol.ColorRed:
		return "red"
	case protocol.ColorGreen:
		return "green"
	case protocol.ColorBlueish:
		return "blueish"
	}
	return "unknown"
}
