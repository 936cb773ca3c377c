package stats

import (
	"net/url"
	"sort"
	"strings"

	"github.com/verte-zerg/typeboard/internal/model"
)

// TopSourceHosts returns the n hosts that appear most often across the
// sources of contents. Sources that are not URLs count by their raw value.
func TopSourceHosts(contents []model.Content, n int) []string {
	if n <= 0 || len(contents) == 0 {
		return nil
	}
	type item struct {
		host  string
		total int
	}
	totals := map[string]int{}
	for _, c := range contents {
		for _, src := range c.Sources {
			if host := sourceHost(src); host != "" {
				totals[host]++
			}
		}
	}
	items := make([]item, 0, len(totals))
	for host, total := range totals {
		items = append(items, item{host: host, total: total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].host < items[j].host
		}
		return items[i].total > items[j].total
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].host)
	}
	return out
}

func sourceHost(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return src
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
