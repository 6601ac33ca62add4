package asciigif_test

import (
	"image"
	"image/color"

	"github.com/kevin-cantwell/asciigif"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

func allZero(pix []uint8) bool {
	for _, p := range pix {
		if p != 0 {
			return false
		}
	}
	return true
}

var _ = Describe("Renderer", func() {
	Describe("NewRenderer", func() {
		It("defaults to 100 columns of 7x13 glyphs", func() {
			r, err := asciigif.NewRenderer()
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Glyph()).To(Equal(image.Pt(7, 13)))
			Expect(r.Size(image.Rect(0, 0, 200, 100))).To(Equal(image.Rect(0, 0, 700, 650)))
		})

		It("rejects fewer than one column", func() {
			_, err := asciigif.NewRenderer(asciigif.WithColumns(0))
			Expect(err).To(HaveOccurred())
		})

		It("rejects a scale that is not positive", func() {
			_, err := asciigif.NewRenderer(asciigif.WithScale(0))
			Expect(err).To(HaveOccurred())
			_, err = asciigif.NewRenderer(asciigif.WithScale(-1))
			Expect(err).To(HaveOccurred())
		})

		It("rejects a nil face", func() {
			_, err := asciigif.NewRenderer(asciigif.WithFace(nil))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Render", func() {
		It("sizes the canvas as cols*glyph by rows*glyph", func() {
			r, err := asciigif.NewRenderer(asciigif.WithColumns(5))
			Expect(err).NotTo(HaveOccurred())
			img, err := r.Render(solid(10, 10, color.Black))
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds()).To(Equal(image.Rect(0, 0, 35, 65)))
		})

		It("draws every cell of a black frame as @", func() {
			r, err := asciigif.NewRenderer(asciigif.WithColumns(5))
			Expect(err).NotTo(HaveOccurred())
			img, err := r.Render(solid(10, 10, color.Black))
			Expect(err).NotTo(HaveOccurred())

			want := image.NewRGBA(image.Rect(0, 0, 35, 65))
			d := font.Drawer{Dst: want, Src: image.White, Face: basicfont.Face7x13}
			for i := 0; i < 5; i++ {
				d.Dot = fixed.P(0, i*13+11)
				d.DrawString("@@@@@")
			}
			for y := 0; y < 65; y++ {
				for x := 0; x < 35; x++ {
					r, _, _, _ := want.At(x, y).RGBA()
					Expect(img.ColorIndexAt(x, y)).To(Equal(uint8(r>>8)), "pixel %d,%d", x, y)
				}
			}
			Expect(allZero(img.Pix)).To(BeFalse())
		})

		It("leaves a white frame black since spaces draw nothing", func() {
			r, err := asciigif.NewRenderer(asciigif.WithColumns(8))
			Expect(err).NotTo(HaveOccurred())
			img, err := r.Render(solid(16, 8, color.White))
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds()).To(Equal(image.Rect(0, 0, 56, 52)))
			Expect(allZero(img.Pix)).To(BeTrue())
		})

		It("renders one column wide at --cols 1", func() {
			r, err := asciigif.NewRenderer(asciigif.WithColumns(1))
			Expect(err).NotTo(HaveOccurred())
			img, err := r.Render(solid(10, 30, color.Black))
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds()).To(Equal(image.Rect(0, 0, 7, 39)))

			img, err = r.Render(solid(30, 10, color.Black))
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds()).To(Equal(image.Rect(0, 0, 7, 13)))
		})

		It("applies the vertical scale", func() {
			r, err := asciigif.NewRenderer(asciigif.WithColumns(10), asciigif.WithScale(0.5))
			Expect(err).NotTo(HaveOccurred())
			img, err := r.Render(solid(100, 100, color.Black))
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds()).To(Equal(image.Rect(0, 0, 70, 65)))
		})

		It("is deterministic", func() {
			src := solid(40, 20, color.RGBA{90, 120, 200, 255})
			for x := 0; x < 40; x++ {
				src.Set(x, x/2, color.White)
			}
			r, err := asciigif.NewRenderer(asciigif.WithColumns(20))
			Expect(err).NotTo(HaveOccurred())
			a, err := r.Render(src)
			Expect(err).NotTo(HaveOccurred())
			b, err := r.Render(src)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Pix).To(Equal(b.Pix))
		})

		It("runs filters before resampling", func() {
			r, err := asciigif.NewRenderer(
				asciigif.WithColumns(5),
				asciigif.WithFilters(asciigif.Brightness(100)),
			)
			Expect(err).NotTo(HaveOccurred())
			g, err := r.Grid(solid(10, 10, color.Black))
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Line(0)).To(Equal("     "))
		})

		It("sizes glyphs from a TrueType face", func() {
			face, err := asciigif.ParseFace(gomono.TTF, 12)
			Expect(err).NotTo(HaveOccurred())
			glyph := asciigif.GlyphSize(face)
			Expect(glyph.X).To(BeNumerically(">", 0))
			Expect(glyph.Y).To(BeNumerically(">", 0))

			r, err := asciigif.NewRenderer(asciigif.WithColumns(6), asciigif.WithFace(face))
			Expect(err).NotTo(HaveOccurred())
			img, err := r.Render(solid(12, 6, color.Black))
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Bounds()).To(Equal(image.Rect(0, 0, 6*glyph.X, 3*glyph.Y)))
			Expect(allZero(img.Pix)).To(BeFalse())
		})
	})
})
