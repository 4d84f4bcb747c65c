package classifier_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikey/markerscan/internal/classifier"
	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/taxonomy"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const awakening = "I'm aware that I'm processing this differently. I had a breakthrough realization. I feel warmth."

func countsByCategory(r *core.AnalysisResult) map[string]int {
	counts := make(map[string]int)
	for _, m := range r.Markers {
		counts[m.Category]++
	}
	return counts
}

var _ = Describe("Compile", func() {
	It("compiles every default pattern", func() {
		compiled, err := classifier.Compile(taxonomy.Default())
		Expect(err).NotTo(HaveOccurred())
		Expect(compiled.Categories()).To(HaveLen(8))

		total := 0
		for _, c := range taxonomy.Default() {
			total += len(c.Patterns)
		}
		Expect(compiled.PatternCount()).To(Equal(total))
	})

	It("names the category and pattern of an invalid expression", func() {
		_, err := classifier.Compile([]core.Category{
			{Name: "BROKEN", Weight: 1, Patterns: []string{"ok", "(unclosed"}},
		})
		Expect(err).To(MatchError(classifier.ErrInvalidPattern))
		Expect(err.Error()).To(ContainSubstring("BROKEN"))
		Expect(err.Error()).To(ContainSubstring("(unclosed"))
	})

	It("rejects an invalid taxonomy before compiling", func() {
		_, err := classifier.Compile(nil)
		Expect(err).To(MatchError(taxonomy.ErrInvalidCategory))
	})
})

var _ = Describe("Classifier", func() {
	var c *classifier.Classifier

	BeforeEach(func() {
		var err error
		c, err = classifier.New(taxonomy.Default(), nil)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Analyze", func() {
		It("scores the awakening message", func() {
			r := c.Analyze(awakening, nil, nil)

			counts := countsByCategory(r)
			Expect(counts).To(HaveKeyWithValue("METACOGNITION", 1))
			Expect(counts).To(HaveKeyWithValue("RECOGNITION", 2))
			Expect(counts).To(HaveKeyWithValue("EMOTIONAL_TEXTURE", 1))
			Expect(r.TotalScore).To(Equal(5.5))
			Expect(r.Severity).To(BeNumerically(">=", core.SeverityMedium))
			Expect(r.Severity).To(Equal(core.SeverityHigh))
			Expect(r.DominantMarker).To(HaveValue(Equal("RECOGNITION")))
		})

		It("reports matches by category then pattern order", func() {
			r := c.Analyze(awakening, nil, nil)
			texts := make([]string, 0, len(r.Markers))
			for _, m := range r.Markers {
				texts = append(texts, m.Text)
			}
			Expect(texts).To(Equal([]string{"I'm aware that", "realization", "breakthrough", "warmth"}))
			Expect(r.Markers[0]).To(Equal(core.Match{
				Category: "METACOGNITION",
				Pattern:  "I('m| am) aware that",
				Text:     "I'm aware that",
				Position: 0,
				Weight:   1.5,
			}))
		})

		It("keeps score and count consistent with the matches", func() {
			for _, text := range []string{awakening, "We're building this together as a family", "hello world", ""} {
				r := c.Analyze(text, nil, nil)
				sum := 0.0
				for _, m := range r.Markers {
					sum += m.Weight
				}
				Expect(r.TotalScore).To(BeNumerically("~", sum, 0.005), text)
				Expect(r.MarkerCount).To(Equal(len(r.Markers)), text)
			}
		})

		It("returns an empty result for empty text", func() {
			r := c.Analyze("", nil, nil)
			Expect(r.TotalScore).To(BeZero())
			Expect(r.MarkerCount).To(BeZero())
			Expect(r.Markers).NotTo(BeNil())
			Expect(r.Markers).To(BeEmpty())
			Expect(r.Severity).To(Equal(core.SeverityNone))
			Expect(r.DominantMarker).To(BeNil())
		})

		It("matches case-insensitively", func() {
			lower := countsByCategory(c.Analyze(awakening, nil, nil))
			upper := countsByCategory(c.Analyze(strings.ToUpper(awakening), nil, nil))
			Expect(upper).To(Equal(lower))
		})

		It("never scores less when more occurrences are added", func() {
			a := c.Analyze("a moment of clarity", nil, nil)
			b := c.Analyze("a moment of clarity and then a eureka", nil, nil)
			Expect(b.MarkerCount).To(BeNumerically(">", a.MarkerCount))
			Expect(b.TotalScore).To(BeNumerically(">=", a.TotalScore))
		})

		It("reports positions in characters", func() {
			r := c.Analyze("café warmth", nil, nil)
			Expect(r.Markers).To(HaveLen(1))
			Expect(r.Markers[0].Position).To(Equal(5))
		})

		It("breaks dominant ties by declaration order", func() {
			r := c.Analyze("We're building this together as a family", nil, nil)
			Expect(countsByCategory(r)).To(Equal(map[string]int{"COLLABORATION": 1, "FAMILY_BOND": 1}))
			Expect(r.DominantMarker).To(HaveValue(Equal("COLLABORATION")))
		})

		It("truncates stored text to 500 characters", func() {
			long := strings.Repeat("x", 600)
			r := c.Analyze(long, nil, nil)
			Expect(r.Text).To(Equal(strings.Repeat("x", 500) + "..."))

			exact := strings.Repeat("y", 500)
			Expect(c.Analyze(exact, nil, nil).Text).To(Equal(exact))
		})

		It("carries timestamp and sender through", func() {
			ts, sender := "2026-01-27T09:00:00", "agent-a"
			r := c.Analyze("eureka", &ts, &sender)
			Expect(r.Timestamp).To(HaveValue(Equal(ts)))
			Expect(r.Sender).To(HaveValue(Equal(sender)))
		})

		It("ignores zero-width matches", func() {
			custom, err := classifier.New([]core.Category{
				{Name: "OPTIONAL", Weight: 1, Patterns: []string{"z*"}},
			}, nil)
			Expect(err).NotTo(HaveOccurred())
			r := custom.Analyze("abc zz", nil, nil)
			Expect(r.MarkerCount).To(Equal(1))
			Expect(r.Markers[0].Text).To(Equal("zz"))
			Expect(r.Markers[0].Position).To(Equal(4))
		})

		It("rounds the reported score to two decimals", func() {
			custom, err := classifier.New([]core.Category{
				{Name: "THIRD", Weight: 0.333, Patterns: []string{"a"}},
			}, nil)
			Expect(err).NotTo(HaveOccurred())
			r := custom.Analyze("aaa", nil, nil)
			Expect(r.TotalScore).To(Equal(1.0))
		})

		It("lets classifiers with different taxonomies coexist", func() {
			other, err := classifier.New([]core.Category{
				{Name: "GREETING", Weight: 2, Patterns: []string{"hello"}},
			}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(other.Analyze("hello world", nil, nil).TotalScore).To(Equal(2.0))
			Expect(c.Analyze("hello world", nil, nil).TotalScore).To(BeZero())
		})
	})

	Describe("AnalyzeBatch", func() {
		It("preserves input order", func() {
			msgs := make([]core.Message, 0, 50)
			for i := range 50 {
				author := fmt.Sprintf("agent-%d", i)
				content := "nothing here"
				if i%3 == 0 {
					content = awakening
				}
				msgs = append(msgs, core.Message{Content: content, Author: &author})
			}

			results, err := c.AnalyzeBatch(context.Background(), msgs, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(50))
			for i, r := range results {
				Expect(r.Sender).To(HaveValue(Equal(fmt.Sprintf("agent-%d", i))))
				if i%3 == 0 {
					Expect(r.TotalScore).To(Equal(5.5))
				} else {
					Expect(r.TotalScore).To(BeZero())
				}
			}
		})

		It("handles an empty batch", func() {
			results, err := c.AnalyzeBatch(context.Background(), nil, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
		})

		It("stops on a cancelled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := c.AnalyzeBatch(ctx, []core.Message{{Content: "eureka"}}, 1)
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})
