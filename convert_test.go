package asciigif_test

import (
	"bytes"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevin-cantwell/asciigif"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Converter", func() {
	var (
		dir      string
		progress *bytes.Buffer
	)

	BeforeEach(func() {
		dir = tempDir()
		progress = new(bytes.Buffer)
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	converter := func(opts ...asciigif.ConvertOpt) *asciigif.Converter {
		r, err := asciigif.NewRenderer(asciigif.WithColumns(5), asciigif.WithScale(1))
		Expect(err).NotTo(HaveOccurred())
		c, err := asciigif.NewConverter(progress, append([]asciigif.ConvertOpt{asciigif.WithRenderer(r)}, opts...)...)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	readGIF := func(path string) *gif.GIF {
		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		giff, err := gif.DecodeAll(f)
		Expect(err).NotTo(HaveOccurred())
		return giff
	}

	It("turns a two frame black gif into two grids of @", func() {
		var text bytes.Buffer
		output := filepath.Join(dir, "ascii.gif")
		c := converter(asciigif.WithText(&text))

		Expect(c.Convert(bytes.NewReader(encodeGIF(10, 10, 7, 30)), output)).To(Succeed())

		Expect(progress.String()).To(Equal("Processing frame 1/2\nProcessing frame 2/2\n"))
		grid := strings.Repeat("@@@@@\n", 5)
		Expect(text.String()).To(Equal(grid + "\n" + grid + "\n"))

		giff := readGIF(output)
		Expect(giff.Image).To(HaveLen(2))
		Expect(giff.Delay).To(Equal([]int{7, 30}))
		Expect(giff.LoopCount).To(Equal(0))
		for _, img := range giff.Image {
			Expect(img.Bounds()).To(Equal(image.Rect(0, 0, 35, 65)))
		}
	})

	It("keeps the delay of a single frame and defaults an undeclared one", func() {
		output := filepath.Join(dir, "ascii.gif")
		Expect(converter().Convert(bytes.NewReader(encodeGIF(10, 10, 0)), output)).To(Succeed())
		giff := readGIF(output)
		Expect(giff.Image).To(HaveLen(1))
		Expect(giff.Delay).To(Equal([]int{10}))
	})

	It("produces identical output on identical input", func() {
		input := encodeGIF(20, 10, 5, 5)
		a, b := filepath.Join(dir, "a.gif"), filepath.Join(dir, "b.gif")
		Expect(converter().Convert(bytes.NewReader(input), a)).To(Succeed())
		Expect(converter().Convert(bytes.NewReader(input), b)).To(Succeed())
		aBytes, err := os.ReadFile(a)
		Expect(err).NotTo(HaveOccurred())
		bBytes, err := os.ReadFile(b)
		Expect(err).NotTo(HaveOccurred())
		Expect(aBytes).To(Equal(bBytes))
	})

	It("writes nothing when the input is missing", func() {
		output := filepath.Join(dir, "ascii.gif")
		err := converter().ConvertFile(filepath.Join(dir, "missing.gif"), output)
		Expect(err).To(HaveOccurred())
		_, err = os.Stat(output)
		Expect(os.IsNotExist(err)).To(BeTrue())
		Expect(progress.Len()).To(BeZero())
	})

	It("writes nothing when the input is not an image", func() {
		output := filepath.Join(dir, "ascii.gif")
		Expect(converter().Convert(strings.NewReader("nope"), output)).NotTo(Succeed())
		_, err := os.Stat(output)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("refuses to render zero frames", func() {
		_, _, err := converter().Render(nil)
		Expect(err).To(MatchError(asciigif.ErrNoFrames))
	})

	It("builds a default renderer", func() {
		c, err := asciigif.NewConverter(nil)
		Expect(err).NotTo(HaveOccurred())
		rendered, _, err := c.Render([]asciigif.Frame{{Image: solid(200, 100, image.Black.C), Delay: asciigif.DefaultDelay}})
		Expect(err).NotTo(HaveOccurred())
		Expect(rendered[0].Bounds()).To(Equal(image.Rect(0, 0, 700, 650)))
	})
})
