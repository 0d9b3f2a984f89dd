package tokens

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestQuote(t *testing.T) {
	g := NewWithT(t)

	g.Expect(Quote("-depth")).To(Equal("-depth"))
	g.Expect(Quote("")).To(Equal(`""`))
	g.Expect(Quote("a b")).To(Equal(`"a b"`))
	g.Expect(Quote(`say "hi"`)).To(Equal(`"say \"hi\""`))
	g.Expect(Quote("tab\there")).To(Equal(`"tab\there"`))
	g.Expect(Quote(`c:\dir`)).To(Equal(`c:\dir`))
	g.Expect(Quote(`c:\my dir`)).To(Equal(`"c:\\my dir"`))
}

func TestJoin(t *testing.T) {
	g := NewWithT(t)

	g.Expect(Join(nil)).To(Equal(""))
	g.Expect(Join([]string{"-k", "v"})).To(Equal("-k v"))
	g.Expect(Join([]string{"-n", "T -k v"})).To(Equal(`-n "T -k v"`))
}

func TestSplit(t *testing.T) {
	g := NewWithT(t)

	out, err := Split("  -k   v ")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(Equal([]string{"-k", "v"}))

	out, err = Split(`-n "T -k \"x y\"" -z 'single quoted'`)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(Equal([]string{"-n", `T -k "x y"`, "-z", "single quoted"}))

	out, err = Split("")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(BeEmpty())
}

func TestSplitErrors(t *testing.T) {
	g := NewWithT(t)

	_, err := Split(`-k "open`)
	g.Expect(err).To(MatchError(ErrUnterminatedQuote))

	_, err = Split(`-k "open\`)
	g.Expect(err).To(MatchError(ErrTrailingBackslash))
}

func TestRoundTrip(t *testing.T) {
	cases := [][]string{
		{},
		{"-x"},
		{"-depth", "5", "-name", ""},
		{"-n", "T -k v"},
		{"-n", `T -inner "A -q \"deep value\""`},
		{"line\nbreak", "cr\r", "percent %", "quote ' mark", `back\slash here`},
		{"sep\u001Eand space"},
		{`literal \u001E text`},
		{"a \xff", "\xfe\xff", "ok \xe2\x82"},
	}

	for _, tc := range cases {
		g := NewWithT(t)
		out, err := Split(Join(tc))
		g.Expect(err).NotTo(HaveOccurred())
		if len(tc) == 0 {
			g.Expect(out).To(BeEmpty())
			continue
		}
		g.Expect(out).To(Equal(tc))
	}
}

func TestEscapeKeepsInvalidUTF8(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Escape("a\xff\"")).To(Equal("a\xff\\\""))
	g.Expect(Quote("a \xff")).To(Equal("\"a \xff\""))
}

func TestEscapeUnescape(t *testing.T) {
	g := NewWithT(t)

	in := "a\\b'c\"d\te\nf\rg%h\u001E"
	g.Expect(Unescape(Escape(in))).To(Equal(in))
	g.Expect(Unescape(`unknown \q sequence`)).To(Equal(`unknown \q sequence`))
	g.Expect(Unescape(`ends with \`)).To(Equal(`ends with \`))
}
