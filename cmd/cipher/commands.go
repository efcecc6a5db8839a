package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/classical-cipher-go/internal/cipher"
	"github.com/classical-cipher-go/internal/httputil"
	"github.com/classical-cipher-go/internal/modular"
)

const (
	actionEncrypt = "encrypt"
	actionDecrypt = "decrypt"
)

type options struct {
	key     int
	keyword string
	matrix  string
	keynums string
	seed    string
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "cipher",
		Short: "Classical cipher toolkit",
		Long: `cipher encrypts and decrypts text with the Caesar, Playfair, 2x2 Hill and
one-time pad ciphers.

Example:
  cipher caesar encrypt "Hello, World!" --key 3
  cipher hill decrypt TC --matrix 3,3,2,5`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(
		cipherCommand(out, opts, cipher.TypeCaesar, "Caesar shift", func(cmd *cobra.Command) {
			cmd.Flags().IntVarP(&opts.key, "key", "k", 3, "shift amount, any integer")
		}, runCaesar),
		cipherCommand(out, opts, cipher.TypePlayfair, "Playfair digraph substitution", func(cmd *cobra.Command) {
			cmd.Flags().StringVarP(&opts.keyword, "keyword", "w", "", "keyword used to build the key square")
		}, runPlayfair),
		cipherCommand(out, opts, cipher.TypeHill, "2x2 Hill cipher mod 26", func(cmd *cobra.Command) {
			cmd.Flags().StringVarP(&opts.matrix, "matrix", "m", "3,3,2,5", "key matrix entries a,b,c,d")
		}, runHill),
		cipherCommand(out, opts, cipher.TypeOTP, "One-time pad over A-Z", func(cmd *cobra.Command) {
			cmd.Flags().StringVarP(&opts.keynums, "keynums", "n", "", "comma separated key values; generated when encrypting without one")
			cmd.Flags().StringVar(&opts.seed, "seed", "", "derive generated keys from this seed instead of the system entropy")
		}, runOTP),
	)
	return root
}

type runFunc func(out io.Writer, opts *options, action, text string) error

func cipherCommand(out io.Writer, opts *options, t cipher.Type, short string, flags func(*cobra.Command), run runFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:       fmt.Sprintf("%s encrypt|decrypt TEXT", t),
		Short:     short,
		ValidArgs: []string{actionEncrypt, actionDecrypt},
		Args:      cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := strings.ToLower(args[0])
			if action != actionEncrypt && action != actionDecrypt {
				return fmt.Errorf("unknown action %q, want encrypt or decrypt", args[0])
			}
			return run(out, opts, action, args[1])
		},
	}
	flags(cmd)
	return cmd
}

func apply(c cipher.TextCipher, action, text string) (string, error) {
	if action == actionEncrypt {
		return c.Encrypt(text)
	}
	return c.Decrypt(text)
}

func runCaesar(out io.Writer, opts *options, action, text string) error {
	c, err := cipher.NewCipher(cipher.TypeCaesar, cipher.Params{Shift: opts.key})
	if err != nil {
		return err
	}
	result, err := apply(c, action, text)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result)
	return nil
}

func runPlayfair(out io.Writer, opts *options, action, text string) error {
	if strings.TrimSpace(opts.keyword) == "" {
		return fmt.Errorf("keyword required")
	}

	var (
		res cipher.PlayfairResult
		err error
	)
	if action == actionEncrypt {
		res, err = cipher.PlayfairEncrypt(text, opts.keyword)
	} else {
		res, err = cipher.PlayfairDecrypt(text, opts.keyword)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, res.Text)
	fmt.Fprintln(out, "key square:")
	for _, row := range res.Square.Rows() {
		fmt.Fprintf(out, "  %s\n", strings.Join(strings.Split(row, ""), " "))
	}
	pairs := make([]string, len(res.Digraphs))
	for i, d := range res.Digraphs {
		pairs[i] = d.String()
	}
	fmt.Fprintf(out, "pairs: %s\n", strings.Join(pairs, " "))
	return nil
}

func runHill(out io.Writer, opts *options, action, text string) error {
	k, err := httputil.ParseMatrixList(opts.matrix)
	if err != nil {
		return fmt.Errorf("invalid matrix: %w", err)
	}

	if action == actionEncrypt {
		fmt.Fprintln(out, cipher.HillEncrypt(text, k))
		return nil
	}

	res, err := cipher.HillDecrypt(text, k)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, res.Text)
	fmt.Fprintf(out, "determinant: %d\n", res.Determinant)
	fmt.Fprintf(out, "inverse: %s\n", formatMatrix(res.Inverse))
	return nil
}

func runOTP(out io.Writer, opts *options, action, text string) error {
	var (
		key []int
		err error
	)
	switch {
	case opts.keynums != "":
		if key, err = httputil.ParseKeyNumbers(opts.keynums); err != nil {
			return fmt.Errorf("invalid key numbers: %w", err)
		}
	case action == actionDecrypt:
		return fmt.Errorf("--keynums is required to decrypt")
	default:
		n := len(cipher.Letters(text))
		if n == 0 {
			return fmt.Errorf("plaintext must contain letters")
		}
		src := cipher.DefaultKeySource
		if opts.seed != "" {
			if src, err = cipher.NewSeededSource(opts.seed); err != nil {
				return err
			}
		}
		if key, err = cipher.GenerateKey(src, n); err != nil {
			return err
		}
	}

	c, err := cipher.NewCipher(cipher.TypeOTP, cipher.Params{Pad: key})
	if err != nil {
		return err
	}
	result, err := apply(c, action, text)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result)
	fmt.Fprintf(out, "key: %s\n", httputil.FormatKeyNumbers(key))
	return nil
}

func formatMatrix(m modular.Matrix2) string {
	return fmt.Sprintf("[[%d %d] [%d %d]]", m[0][0], m[0][1], m[1][0], m[1][1])
}
