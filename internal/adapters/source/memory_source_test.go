package source

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mikey/markerscan/internal/core"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ptr(s string) *string { return &s }

func contents(msgs []core.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Content)
	}
	return out
}

var _ = Describe("MemorySource", func() {
	var src *MemorySource

	BeforeEach(func() {
		src = NewMemorySource([]core.Message{
			{Content: "oldest", Timestamp: ptr("2026-01-25T10:00:00"), Author: ptr("alpha")},
			{Content: "", Timestamp: ptr("2026-01-28T10:00:00"), Author: ptr("alpha")},
			{Content: "undated", Author: ptr("beta")},
			{Content: "newest", Timestamp: ptr("2026-01-27T10:00:00"), Author: ptr("beta")},
			{Content: "middle", Timestamp: ptr("2026-01-26T10:00:00"), Author: ptr("gamma")},
		}, nil)
	})

	It("returns non-empty messages newest first", func() {
		msgs, err := src.Fetch(context.Background(), core.Query{})
		Expect(err).NotTo(HaveOccurred())
		Expect(contents(msgs)).To(Equal([]string{"newest", "middle", "oldest", "undated"}))
	})

	It("applies since, authors and limit", func() {
		msgs, err := src.Fetch(context.Background(), core.Query{Since: "2026-01-26"})
		Expect(err).NotTo(HaveOccurred())
		Expect(contents(msgs)).To(Equal([]string{"newest", "middle"}))

		msgs, err = src.Fetch(context.Background(), core.Query{Authors: []string{"alpha,gamma"}})
		Expect(err).NotTo(HaveOccurred())
		Expect(contents(msgs)).To(Equal([]string{"middle", "oldest"}))

		msgs, err = src.Fetch(context.Background(), core.Query{Limit: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(contents(msgs)).To(Equal([]string{"newest", "middle"}))
	})

	It("honours a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := src.Fetch(ctx, core.Query{})
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("JSONL source", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("loads one message per line", func() {
		path := filepath.Join(dir, "messages.jsonl")
		Expect(os.WriteFile(path, []byte(
			`{"content": "eureka", "timestamp": "2026-01-27T09:00:00", "author": "alpha"}`+"\n"+
				"\n"+
				`{"timestamp": "2026-01-27T10:00:00"}`+"\n"+
				`{"content": "home", "author": null}`+"\n"), 0o644)).To(Succeed())

		src, err := NewJSONLSource(path, nil)
		Expect(err).NotTo(HaveOccurred())
		msgs, err := src.Fetch(context.Background(), core.Query{})
		Expect(err).NotTo(HaveOccurred())
		Expect(msgs).To(HaveLen(2))
		Expect(msgs[0].Content).To(Equal("eureka"))
		Expect(msgs[0].Author).To(HaveValue(Equal("alpha")))
		Expect(msgs[1].Author).To(BeNil())
	})

	It("reports a missing file as unavailable", func() {
		_, err := NewJSONLSource(filepath.Join(dir, "missing.jsonl"), nil)
		Expect(err).To(MatchError(core.ErrSourceUnavailable))
	})

	It("reports malformed lines", func() {
		path := filepath.Join(dir, "broken.jsonl")
		Expect(os.WriteFile(path, []byte("{not json}\n"), 0o644)).To(Succeed())
		_, err := NewJSONLSource(path, nil)
		Expect(err).To(MatchError(ContainSubstring("line 1")))
	})
})

var _ = Describe("UnavailableSource", func() {
	It("reports its cause on every fetch", func() {
		src := NewUnavailableSource(core.ErrSourceUnavailable)
		_, err := src.Fetch(context.Background(), core.Query{})
		Expect(err).To(MatchError(core.ErrSourceUnavailable))
		Expect(src.Close()).To(Succeed())
	})
})
