package main

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tomasbasham/jsonform"
)

const (
	formatMultipart  = "multipart"
	formatURLEncoded = "urlencoded"
)

// config holds the resolved settings of a single run.
type config struct {
	Format      string
	Dot         bool
	LeafIndexes bool
	Nulls       bool
	Attach      []string
	Output      string
	Boundary    string
}

func (c config) options() []jsonform.Option {
	return []jsonform.Option{
		jsonform.WithDotSeparator(c.Dot),
		jsonform.WithLeafArrayIndexes(c.LeafIndexes),
		jsonform.WithNullValues(c.Nulls),
	}
}

// newCommand creates the jsonform command reading from stdin and writing to
// stdout unless a file or --output is given.
func newCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	vp := newViper()
	log := logrus.New()
	log.SetOutput(os.Stderr)

	cmd := &cobra.Command{
		Use:   "jsonform [file]",
		Short: "Convert a JSON document into form data",
		Long: `Convert a JSON document into a multipart/form-data or
application/x-www-form-urlencoded body. Nested objects and arrays are
flattened into bracketed (or dotted) keys and files given with --attach are
added as file parts.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := vp.BindPFlags(cmd.Flags()); err != nil {
				return errors.Wrap(err, "failed to bind flags")
			}
			if cfgFile := vp.GetString("config"); cfgFile != "" {
				vp.SetConfigFile(cfgFile)
				if err := vp.ReadInConfig(); err != nil {
					return errors.Wrapf(err, "failed to read config file %s", cfgFile)
				}
				log.WithField("file", vp.ConfigFileUsed()).Debug("Using config file")
			}
			if vp.GetBool("debug") {
				log.SetLevel(logrus.DebugLevel)
			} else {
				log.SetLevel(logrus.InfoLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config{
				Format:      vp.GetString("format"),
				Dot:         vp.GetBool("dot"),
				LeafIndexes: vp.GetBool("leaf-indexes"),
				Nulls:       vp.GetBool("nulls"),
				Attach:      vp.GetStringSlice("attach"),
				Output:      vp.GetString("output"),
				Boundary:    vp.GetString("boundary"),
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return execute(log, cfg, input, stdin, stdout)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "Config file")
	flags.BoolP("debug", "D", false, "Enable debug messages")
	flags.StringP("format", "f", formatMultipart, "Output format, one of multipart or urlencoded")
	flags.Bool("dot", false, "Join nested object keys with dots instead of brackets")
	flags.Bool("leaf-indexes", true, "Key primitive array elements with their index instead of []")
	flags.Bool("nulls", false, `Emit null values as the text "null"`)
	flags.StringSlice("attach", nil, "Attach a file as key=path, may be repeated")
	flags.StringP("output", "o", "", "Write the body to this file instead of stdout")
	flags.String("boundary", "", "Use a fixed multipart boundary")

	return cmd
}

func newViper() *viper.Viper {
	vp := viper.New()
	vp.SetEnvPrefix("jsonform")
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()
	return vp
}

// execute opens the input and output files named in cfg, falling back to
// stdin and stdout, and runs the conversion.
func execute(log logrus.FieldLogger, cfg config, input string, stdin io.Reader, stdout io.Writer) error {
	in := stdin
	if input != "" && input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return errors.Wrap(err, "failed to open input")
		}
		defer f.Close()
		in = f
	}

	if cfg.Output == "" || cfg.Output == "-" {
		return run(log, cfg, in, stdout)
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return errors.Wrap(err, "failed to create output")
	}
	return runAndClose(log, cfg, in, f)
}

// runAndClose runs the conversion into out and closes it. A failed close is
// reported since it may hide a failed write.
func runAndClose(log logrus.FieldLogger, cfg config, in io.Reader, out io.WriteCloser) (err error) {
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close output")
		}
	}()
	return run(log, cfg, in, out)
}

// run converts the JSON document read from in and writes the body to out.
func run(log logrus.FieldLogger, cfg config, in io.Reader, out io.Writer) error {
	root, err := decodeJSON(in)
	if err != nil {
		return err
	}

	attachments := make([]attachment, 0, len(cfg.Attach))
	for _, s := range cfg.Attach {
		a, err := parseAttachment(s)
		if err != nil {
			return err
		}
		attachments = append(attachments, a)
	}
	if root, err = attachFiles(root, attachments); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"format":      cfg.Format,
		"attachments": len(attachments),
	}).Debug("Converting document")

	switch cfg.Format {
	case formatMultipart:
		enc := jsonform.NewEncoder(out, cfg.options()...)
		if cfg.Boundary != "" {
			if err := enc.SetBoundary(cfg.Boundary); err != nil {
				return errors.Wrap(err, "invalid boundary")
			}
		}
		if err := enc.Encode(root); err != nil {
			return errors.Wrap(err, "failed to encode form")
		}
		log.WithField("content-type", enc.FormDataContentType()).Info("Wrote multipart body")
	case formatURLEncoded:
		data, err := jsonform.Marshal(root, cfg.options()...)
		if err != nil {
			return errors.Wrap(err, "failed to encode form")
		}
		if _, err := out.Write(data); err != nil {
			return errors.Wrap(err, "failed to write output")
		}
	default:
		return errors.Errorf("unknown format %q", cfg.Format)
	}
	return nil
}
