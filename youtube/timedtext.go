package youtube

import (
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/ingest"
)

// parseTimedText parses a timedtext caption document. Both the classic
// format (<text start="1.5">) and srv3 (<p t="1500">) are supported.
// Segments whose text is blank are dropped.
func parseTimedText(data []byte) ([]ingest.TranscriptSegment, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}

	var segments []ingest.TranscriptSegment
	for _, el := range doc.FindElements("//text") {
		start, _ := strconv.ParseFloat(el.SelectAttrValue("start", "0"), 64)
		segments = appendSegment(segments, innerText(el), time.Duration(start*float64(time.Second)))
	}
	if len(segments) > 0 {
		return segments, nil
	}

	for _, el := range doc.FindElements("//body/p") {
		ms, _ := strconv.ParseInt(el.SelectAttrValue("t", "0"), 10, 64)
		segments = appendSegment(segments, innerText(el), time.Duration(ms)*time.Millisecond)
	}
	return segments, nil
}

func appendSegment(segments []ingest.TranscriptSegment, text string, start time.Duration) []ingest.TranscriptSegment {
	// Caption text is HTML-escaped inside the XML, e.g. &amp;#39;.
	text = strings.TrimSpace(html.UnescapeString(text))
	if text == "" {
		return segments
	}
	return append(segments, ingest.TranscriptSegment{Text: text, Start: start})
}

// innerText concatenates all character data beneath el.
func innerText(el *etree.Element) string {
	var sb strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			sb.WriteString(innerText(t))
		}
	}
	return sb.String()
}
