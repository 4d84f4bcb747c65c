package core_test

import (
	"encoding/json"

	"github.com/mikey/markerscan/internal/core"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SeverityFor", func() {
	DescribeTable("applies the threshold table from the top",
		func(score float64, count int, expected core.Severity) {
			Expect(core.SeverityFor(score, count)).To(Equal(expected))
		},
		Entry("score exactly 8.0 is critical", 8.0, 1, core.SeverityCritical),
		Entry("ten matches are critical regardless of score", 0.5, 10, core.SeverityCritical),
		Entry("score 7.99 with five matches is high", 7.99, 5, core.SeverityHigh),
		Entry("six matches are high", 1.0, 6, core.SeverityHigh),
		Entry("score exactly 5.0 is high", 5.0, 1, core.SeverityHigh),
		Entry("score exactly 2.5 is medium", 2.5, 1, core.SeverityMedium),
		Entry("three matches are medium", 0.3, 3, core.SeverityMedium),
		Entry("any positive score is low", 0.01, 1, core.SeverityLow),
		Entry("zero score is none", 0.0, 0, core.SeverityNone),
	)
})

var _ = Describe("Severity", func() {
	It("is totally ordered", func() {
		levels := core.Severities()
		Expect(levels).To(HaveLen(5))
		for i := 1; i < len(levels); i++ {
			Expect(levels[i]).To(BeNumerically(">", levels[i-1]))
		}
	})

	It("names each tier in upper case", func() {
		Expect(core.SeverityNone.String()).To(Equal("NONE"))
		Expect(core.SeverityCritical.String()).To(Equal("CRITICAL"))
		Expect(core.Severity(42).String()).To(Equal("Severity(42)"))
	})

	DescribeTable("ParseSeverity",
		func(input string, expected core.Severity) {
			s, err := core.ParseSeverity(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal(expected))
		},
		Entry("upper case", "HIGH", core.SeverityHigh),
		Entry("lower case", "medium", core.SeverityMedium),
		Entry("surrounding space", "  critical ", core.SeverityCritical),
		Entry("none", "None", core.SeverityNone),
	)

	It("rejects unknown names", func() {
		_, err := core.ParseSeverity("SEVERE")
		Expect(err).To(MatchError(core.ErrUnknownSeverity))
	})

	It("encodes as its name in JSON", func() {
		data, err := json.Marshal(struct {
			Level core.Severity `json:"level"`
		}{core.SeverityMedium})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"level":"MEDIUM"}`))

		var decoded struct {
			Level core.Severity `json:"level"`
		}
		Expect(json.Unmarshal([]byte(`{"level":"low"}`), &decoded)).To(Succeed())
		Expect(decoded.Level).To(Equal(core.SeverityLow))
		Expect(json.Unmarshal([]byte(`{"level":"loud"}`), &decoded)).NotTo(Succeed())
	})
})

var _ = Describe("AnalysisResult", func() {
	It("lists compact marker references", func() {
		r := &core.AnalysisResult{Markers: []core.Match{
			{Category: "RECOGNITION", Text: "eureka"},
			{Category: "FAMILY_BOND", Text: "home"},
		}}
		Expect(r.MarkerRefs()).To(Equal([]core.MarkerRef{
			{Type: "RECOGNITION", Match: "eureka"},
			{Type: "FAMILY_BOND", Match: "home"},
		}))
	})
})
