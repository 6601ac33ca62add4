package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/codegangsta/cli"
	"github.com/kevin-cantwell/asciigif"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		exit(err.Error(), 1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "asciigif"
	app.Usage = "A command-line tool for turning animated images into ASCII art gifs."
	app.UsageText = "1) asciigif [options]\n" +
		/*      */ "   2) asciigif --input [file|url|-] --output [file]"
	app.Author = "Kevin Cantwell"
	app.Email = "kevin.cantwell@gmail.com"
	app.Writer = stdout
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "`FILE` is a yaml file with defaults for any of the other options. Options given on the command line win.",
		},
		cli.StringFlag{
			Name:  "input",
			Usage: "`INPUT` is a gif, png, jpeg, bmp, webp or motion jpeg file, an http(s) url, or - for stdin.",
			Value: asciigif.DefaultInput,
		},
		cli.StringFlag{
			Name:  "output",
			Usage: "`OUTPUT` is where the ASCII gif is written.",
			Value: asciigif.DefaultOutput,
		},
		cli.IntFlag{
			Name:  "cols",
			Usage: "`COLS` is the number of ASCII characters per row.",
			Value: asciigif.DefaultColumns,
		},
		cli.Float64Flag{
			Name:  "scale",
			Usage: "`SCALE` multiplies the number of rows. Less than 1.0 squashes the art vertically.",
			Value: asciigif.DefaultScale,
		},
		cli.StringFlag{
			Name:  "font_path",
			Usage: "`FONT` is a TrueType font file. The built in 7x13 bitmap font is used if unset.",
		},
		cli.IntFlag{
			Name:  "font_size",
			Usage: "`SIZE` in points for the TrueType font. Ignored without --font_path.",
			Value: asciigif.DefaultFontSize,
		},
		cli.Float64Flag{
			Name:  "fps",
			Usage: "`FPS` of motion jpeg input.",
			Value: asciigif.DefaultFPS,
		},
		cli.Float64Flag{
			Name:  "gamma,g",
			Usage: "`GAMMA` = 1.0 gives the original image. GAMMA less than 1.0 darkens the image and GAMMA greater than 1.0 lightens it.",
			Value: 1.0,
		},
		cli.Float64Flag{
			Name:  "brightness,b",
			Usage: "`BRIGHTNESS` = 0 gives the original image. BRIGHTNESS = -100 gives solid black image. BRIGHTNESS = 100 gives solid white image.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "contrast,c",
			Usage: "`CONTRAST` = 0 gives the original image. CONTRAST = -100 gives solid grey image. CONTRAST = 100 gives maximum contrast.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "sharpen,s",
			Usage: "`SHARPEN` = 0 gives the original image. SHARPEN greater than 0 sharpens the image.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "sigmoid-midpoint",
			Usage: "`MIDPOINT` of contrast that must be between 0 and 1.",
			Value: 0.5,
		},
		cli.Float64Flag{
			Name:  "sigmoid-factor",
			Usage: "`FACTOR` = 0 gives the original image. FACTOR greater than 0 increases contrast. FACTOR less than 0 decreases contrast.",
			Value: 0.0,
		},
		cli.BoolFlag{
			Name:  "print,p",
			Usage: "Also prints the ASCII text of every frame.",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Logs debug output to stderr.",
		},
	}
	app.Action = func(c *cli.Context) error {
		cfg, err := configure(c)
		if err != nil {
			return err
		}
		log := newLogger(stderr, c.Bool("verbose"))

		renderer, err := cfg.Renderer(log)
		if err != nil {
			return err
		}
		opts := []asciigif.ConvertOpt{
			asciigif.WithRenderer(renderer),
			asciigif.WithDecodeOpts(asciigif.WithFPS(cfg.FPS)),
			asciigif.WithConvertLogger(log),
		}
		if c.Bool("print") {
			opts = append(opts, asciigif.WithText(stdout))
		}
		conv, err := asciigif.NewConverter(stdout, opts...)
		if err != nil {
			return err
		}

		input, err := openInput(cfg.Input)
		if err != nil {
			return err
		}
		defer input.Close()
		return conv.Convert(input, cfg.Output)
	}
	return app
}

// configure layers the flags that were actually given over the config file,
// which is itself layered over the defaults.
func configure(c *cli.Context) (*asciigif.Config, error) {
	cfg := asciigif.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = asciigif.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("cols") {
		cfg.Cols = c.Int("cols")
	}
	if c.IsSet("scale") {
		cfg.Scale = c.Float64("scale")
	}
	if c.IsSet("font_path") {
		cfg.FontPath = c.String("font_path")
	}
	if c.IsSet("font_size") {
		cfg.FontSize = c.Int("font_size")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Float64("fps")
	}
	if c.IsSet("gamma") {
		cfg.Adjust.Gamma = c.Float64("gamma")
	}
	if c.IsSet("brightness") {
		cfg.Adjust.Brightness = c.Float64("brightness")
	}
	if c.IsSet("contrast") {
		cfg.Adjust.Contrast = c.Float64("contrast")
	}
	if c.IsSet("sharpen") {
		cfg.Adjust.Sharpen = c.Float64("sharpen")
	}
	if c.IsSet("sigmoid-midpoint") {
		cfg.Adjust.SigmoidMidpoint = c.Float64("sigmoid-midpoint")
	}
	if c.IsSet("sigmoid-factor") {
		cfg.Adjust.SigmoidFactor = c.Float64("sigmoid-factor")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openInput opens a file, fetches a url, or reads stdin for "-".
func openInput(input string) (io.ReadCloser, error) {
	switch {
	case input == "-":
		return io.NopCloser(os.Stdin), nil
	case strings.HasPrefix(input, "http://"), strings.HasPrefix(input, "https://"):
		resp, err := http.Get(input)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: %s", input, resp.Status)
		}
		return resp.Body, nil
	default:
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		return f, nil
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func exit(msg string, code int) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}
