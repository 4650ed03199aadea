package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/setanarut/stickercolors"
	"github.com/setanarut/stickercolors/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// filterFlags backs one --<name> filter and its -threshold, -remove and
// -invert companions.
type filterFlags struct {
	enabled bool
	opt     stickercolors.FilterOptions
}

type extractFlags struct {
	quantize  int
	quantizer string

	transparency filterFlags
	saturation   filterFlags
	value        filterFlags

	clusters  int
	runs      int
	maxIter   int
	clusterer string
	seed      uint64

	format  string
	weights bool
	preview bool
	show    bool
	save    string
	output  string
	width   int
	height  int
}

func newExtractCmd(g *globalFlags) *cobra.Command {
	f := &extractFlags{}
	cmd := &cobra.Command{
		Use:   "extract [flags] <image>...",
		Short: "Extract a weighted palette from one or more stickers",
		Long: `Extract pools the quantized colours of every sticker, then applies, in order:
the transparency filter, k-means clustering, the saturation filter and the
value filter. Each step is optional. Use "-" to read a sticker from stdin.`,
		Example: `  stickercolors extract stickers/*.png
  stickercolors extract -k 6 --saturation --value --weights stickers/*.webp
  stickercolors extract -k 8 --format json --save palette.png pack/*.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, f, g.logger(cmd))
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&f.quantize, "quantize", "q", stickercolors.DefaultQuantize, "maximum colours per sticker before pooling")
	fs.StringVar(&f.quantizer, "quantizer", utils.QuantizeMedianCut.String(), "quantization method (mediancut, dominant)")

	addFilterFlags(fs, "transparency", &f.transparency, true, stickercolors.DefaultTransparencyFilter(), "alpha 0-255")
	addFilterFlags(fs, "saturation", &f.saturation, false, stickercolors.DefaultSaturationFilter(), "saturation 0-100")
	addFilterFlags(fs, "value", &f.value, false, stickercolors.DefaultValueFilter(), "HSV value 0-100")

	def := stickercolors.DefaultClusterOptions()
	fs.IntVarP(&f.clusters, "cluster", "k", 0, "cluster the pool into this many colours (0 disables clustering)")
	fs.IntVar(&f.runs, "runs", def.Runs, "k-means restarts")
	fs.IntVar(&f.maxIter, "max-iter", def.MaxIter, "maximum iterations per k-means run")
	fs.StringVar(&f.clusterer, "clusterer", utils.ClusterLloyd.String(), "k-means implementation (lloyd, muesli)")
	fs.Uint64Var(&f.seed, "seed", 0, "seed for the lloyd clusterer (0 picks a random seed)")

	fs.StringVarP(&f.format, "format", "f", formatHex, "output format (hex, rgb, rgba, json)")
	fs.BoolVarP(&f.weights, "weights", "w", false, "print the weight of each colour")
	fs.BoolVarP(&f.preview, "preview", "p", false, "print truecolour swatches when stdout is a terminal")
	fs.BoolVar(&f.show, "show", false, "open a rendered preview in the system image viewer")
	fs.StringVarP(&f.save, "save", "s", "", "write a rendered preview PNG to this path")
	fs.StringVarP(&f.output, "output", "o", "", "write the palette to this file instead of stdout")
	fs.IntVar(&f.width, "width", stickercolors.DefaultPreviewWidth, "rendered preview width")
	fs.IntVar(&f.height, "height", stickercolors.DefaultPreviewHeight, "rendered preview height")

	cmd.MarkFlagsMutuallyExclusive("preview", "output")
	return cmd
}

func addFilterFlags(fs *pflag.FlagSet, name string, f *filterFlags, enabled bool, def stickercolors.FilterOptions, unit string) {
	fs.BoolVar(&f.enabled, name, enabled, fmt.Sprintf("apply the %s filter", name))
	fs.Float64Var(&f.opt.Threshold, name+"-threshold", def.Threshold, fmt.Sprintf("%s filter threshold (%s)", name, unit))
	fs.BoolVar(&f.opt.Remove, name+"-remove", def.Remove, fmt.Sprintf("drop colours rejected by the %s filter", name))
	fs.BoolVar(&f.opt.Invert, name+"-invert", def.Invert, fmt.Sprintf("keep colours rejected by the %s filter instead", name))
}

func (f *extractFlags) validate() error {
	if !validFormat(f.format) {
		return fmt.Errorf("unknown format %q (valid: hex, rgb, rgba, json)", f.format)
	}
	if f.clusters < 0 {
		return fmt.Errorf("--cluster must not be negative, got %d", f.clusters)
	}
	return nil
}

func (f *extractFlags) sources(cmd *cobra.Command, args []string) ([]stickercolors.Source, error) {
	sources := make([]stickercolors.Source, 0, len(args))
	stdin := false
	for _, arg := range args {
		if arg != "-" {
			sources = append(sources, stickercolors.Path(arg))
			continue
		}
		if stdin {
			return nil, errors.New("stdin can only be read once")
		}
		stdin = true
		sources = append(sources, stickercolors.Reader(cmd.InOrStdin()))
	}
	return sources, nil
}

func (f *extractFlags) fitter(logger hclog.Logger) (utils.Fitter, error) {
	method, err := utils.ParseClusterMethod(f.clusterer)
	if err != nil {
		return nil, err
	}
	if method == utils.ClusterMuesli {
		if f.seed != 0 {
			logger.Warn("--seed is ignored by the muesli clusterer")
		}
		return utils.NewFitter(method), nil
	}
	if f.seed == 0 {
		return &utils.LloydFitter{}, nil
	}
	return &utils.LloydFitter{Rand: rand.New(rand.NewPCG(f.seed, f.seed))}, nil
}

func runExtract(cmd *cobra.Command, args []string, f *extractFlags, logger hclog.Logger) error {
	if err := f.validate(); err != nil {
		return err
	}
	qm, err := utils.ParseQuantizeMethod(f.quantizer)
	if err != nil {
		return err
	}
	sources, err := f.sources(cmd, args)
	if err != nil {
		return err
	}

	pool, err := stickercolors.New(sources, stickercolors.Options{
		Quantize:  f.quantize,
		Quantizer: utils.NewQuantizer(qm),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	logger.Debug("pooled stickers", "stickers", len(sources), "colors", pool.Len(), "pixels", pool.TotalWeight())

	if f.transparency.enabled {
		if pool, err = pool.FilterTransparency(f.transparency.opt); err != nil {
			return err
		}
	}

	if f.clusters > 0 {
		fitter, err := f.fitter(logger)
		if err != nil {
			return err
		}
		k := f.clusters
		if n := pool.Len(); n > 0 && k > n {
			logger.Warn("fewer colours than clusters, clustering into fewer", "requested", k, "colors", n)
			k = n
		}
		pool, err = pool.Cluster(stickercolors.ClusterOptions{
			Clusters: k,
			Runs:     f.runs,
			MaxIter:  f.maxIter,
			Fitter:   fitter,
		})
		if err != nil {
			return err
		}
	}

	if f.saturation.enabled {
		if pool, err = pool.FilterSaturation(f.saturation.opt); err != nil {
			return err
		}
	}
	if f.value.enabled {
		if pool, err = pool.FilterValue(f.value.opt); err != nil {
			return err
		}
	}

	if pool.Len() == 0 {
		logger.Warn("palette is empty")
	}
	if err := f.write(cmd, pool, logger); err != nil {
		return err
	}

	if f.save != "" {
		if err := pool.SavePreview(f.save, f.width, f.height); err != nil {
			return err
		}
		logger.Info("saved preview", "path", f.save)
	}
	if f.show {
		if err := pool.Show(f.width, f.height); err != nil {
			return err
		}
	}
	return nil
}

func (f *extractFlags) write(cmd *cobra.Command, pool *stickercolors.ColorPool, logger hclog.Logger) error {
	popt := printOptions{format: f.format, weights: f.weights}

	if f.output == "" {
		w := cmd.OutOrStdout()
		if f.preview && f.format != formatJSON {
			if isTerminal(w) {
				popt.preview = true
			} else {
				logger.Debug("stdout is not a terminal, skipping swatches")
			}
		}
		return printPool(w, pool, popt)
	}

	out, err := os.Create(f.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := printPool(out, pool, popt); err != nil {
		out.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("wrote palette", "path", f.output, "colors", pool.Len())
	return nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
