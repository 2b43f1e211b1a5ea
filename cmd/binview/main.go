// binview inspects and edits binary files as sequences of fixed-width
// typed values.
//
// Usage:
//
//	binview dump [-t u16] [--offset 4] [--count 8] <file>
//	binview get <file> <offset>
//	binview put <file> <offset> <value>
//	binview size <file>
//	binview view <file>    # interactive browser
//
// The element type is chosen with -t (u8..u64, i8..i64, f32, f64) and
// the byte order with --order (native, little, big).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/dacapoday/binfile/bin"
	"github.com/dacapoday/binfile/internal/dump"
)

var (
	typFlag   string
	orderFlag string
)

func main() {
	root := &cobra.Command{
		Use:           "binview",
		Short:         "inspect and edit binary files as typed values",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&typFlag, "type", "t", "u32",
		"element type ("+strings.Join(dump.Types, ", ")+")")
	root.PersistentFlags().StringVar(&orderFlag, "order", "native",
		"byte order (native, little, big)")
	root.AddCommand(dumpCmd(), getCmd(), putCmd(), sizeCmd(), viewCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func order() (*bool, error) {
	switch orderFlag {
	case "native":
		return nil, nil
	case "little":
		return bin.Little, nil
	case "big":
		return bin.Big, nil
	}
	return nil, fmt.Errorf("unknown byte order %q", orderFlag)
}

type file = *bin.Bin[*os.File]

func open(path string) (file, error) {
	if dump.Width(typFlag) == 0 {
		return nil, fmt.Errorf("unknown element type %q", typFlag)
	}
	little, err := order()
	if err != nil {
		return nil, err
	}
	return bin.Open(path, bin.Options{LittleEndian: little})
}

func dumpCmd() *cobra.Command {
	var offset, count int64
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "print a region as decoded values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := open(args[0])
			if err != nil {
				return err
			}
			defer b.Close()

			size, err := b.Size()
			if err != nil {
				return err
			}
			n := count * int64(dump.Width(typFlag))
			if count == 0 || offset+n > size {
				n = size - offset
			}
			data, err := b.GetRawAt(n, offset)
			if err != nil {
				return err
			}
			return dump.Render(os.Stdout, offset, data, typFlag, b.LittleEndian())
		},
	}
	cmd.Flags().Int64Var(&offset, "offset", 0, "byte offset to start at")
	cmd.Flags().Int64Var(&count, "count", 0, "number of elements (0 = to end)")
	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <offset>",
		Short: "print the value at a byte offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			off, err := cast.ToInt64E(args[1])
			if err != nil {
				return fmt.Errorf("bad offset %q: %w", args[1], err)
			}
			b, err := open(args[0])
			if err != nil {
				return err
			}
			defer b.Close()

			s, err := read(b, off)
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
}

func putCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <file> <offset> <value>",
		Short: "write a value at a byte offset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			off, err := cast.ToInt64E(args[1])
			if err != nil {
				return fmt.Errorf("bad offset %q: %w", args[1], err)
			}
			b, err := open(args[0])
			if err != nil {
				return err
			}
			defer b.Close()

			if err := write(b, off, args[2]); err != nil {
				return err
			}
			return b.Flush()
		},
	}
}

func sizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size <file>",
		Short: "print the file size in bytes and elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := open(args[0])
			if err != nil {
				return err
			}
			defer b.Close()

			size, err := b.Size()
			if err != nil {
				return err
			}
			width := int64(dump.Width(typFlag))
			fmt.Printf("%d bytes, %d x %s\n", size, size/width, typFlag)
			return nil
		},
	}
}

// read decodes one element at off, dispatching on the type flag.
func read(b file, off int64) (string, error) {
	format := func(v any, err error) (string, error) {
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	}
	switch typFlag {
	case "u8":
		v, err := bin.GetAt[uint8](b, off)
		return format(v, err)
	case "u16":
		v, err := bin.GetAt[uint16](b, off)
		return format(v, err)
	case "u32":
		v, err := bin.GetAt[uint32](b, off)
		return format(v, err)
	case "u64":
		v, err := bin.GetAt[uint64](b, off)
		return format(v, err)
	case "i8":
		v, err := bin.GetAt[int8](b, off)
		return format(v, err)
	case "i16":
		v, err := bin.GetAt[int16](b, off)
		return format(v, err)
	case "i32":
		v, err := bin.GetAt[int32](b, off)
		return format(v, err)
	case "i64":
		v, err := bin.GetAt[int64](b, off)
		return format(v, err)
	case "f32":
		v, err := bin.GetAt[float32](b, off)
		return format(v, err)
	case "f64":
		v, err := bin.GetAt[float64](b, off)
		return format(v, err)
	}
	return "", fmt.Errorf("unknown element type %q", typFlag)
}

// write parses raw and encodes it at off, dispatching on the type flag.
func write(b file, off int64, raw string) error {
	bad := func(err error) error {
		return fmt.Errorf("bad %s value %q: %w", typFlag, raw, err)
	}
	switch typFlag {
	case "u8":
		v, err := cast.ToUint8E(raw)
		if err != nil {
			return bad(err)
		}
		return bin.PutAt(b, v, off)
	case "u16":
		v, err := cast.ToUint16E(raw)
		if err != nil {
			return bad(err)
		}
		return bin.PutAt(b, v, off)
	case "u32":
		v, err := cast.ToUint32E(raw)
		if err != nil {
			return bad(err)
		}
		return bin.PutAt(b, v, off)
	case "u64":
		v, err := cast.ToUint64E(raw)
		if err != nil {
			return bad(err)
		}
		return bin.PutAt(b, v, off)
	case "i8":
		v, err := cast.ToInt8E(raw)
		if err != nil {
			return bad(err)
		}
		return bin.PutAt(b, v, off)
	case "i16":
		v, err := cast.ToInt16E(raw)
		if err != nil {
			return bad(err)
		}
		return bin.PutAt(b, v, off)
	case "i32":
		v, err := cast.ToInt32E(raw)
		if err != nil {
			return bad(err)
		}
		return bin.PutAt(b, v, off)
	case "i64":
		v, err := cast.ToInt64E(raw)
		if err != nil {
			return bad(err)
		}
		return bin.PutAt(b, v, off)
	case "f32":
		v, err := cast.ToFloat32E(raw)
		if err != nil {
			return bad(err)
		}
		return bin.PutAt(b, v, off)
	case "f64":
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return bad(err)
		}
		return bin.PutAt(b, v, off)
	}
	return fmt.Errorf("unknown element type %q", typFlag)
}
