package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/quepf/deluge-rpc/internal/deluge"
	"github.com/quepf/deluge-rpc/internal/rpc"
)

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func formatRate(bytesPerSec int64) string {
	if bytesPerSec <= 0 {
		return "-"
	}
	return formatBytes(bytesPerSec) + "/s"
}

func formatETA(eta time.Duration) string {
	if eta <= 0 {
		return "-"
	}
	eta = eta.Round(time.Second)
	switch {
	case eta >= 24*time.Hour:
		return fmt.Sprintf("%dd%dh", int(eta.Hours())/24, int(eta.Hours())%24)
	case eta >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(eta.Hours()), int(eta.Minutes())%60)
	case eta >= time.Minute:
		return fmt.Sprintf("%dm%02ds", int(eta.Minutes()), int(eta.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	}
}

func formatProgress(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

func shortHash(hash rpc.InfoHash) string {
	return hash.String()[:8]
}

// sortedStatuses orders torrents by name using locale-aware collation so
// listings match what a user expects alphabetically, with the hash as a
// stable tiebreak.
func sortedStatuses(byHash map[rpc.InfoHash]*deluge.TorrentStatus) []*deluge.TorrentStatus {
	statuses := make([]*deluge.TorrentStatus, 0, len(byHash))
	for _, status := range byHash {
		statuses = append(statuses, status)
	}
	collator := collate.New(language.Und, collate.IgnoreCase)
	sort.Slice(statuses, func(i, j int) bool {
		if cmp := collator.CompareString(statuses[i].Name, statuses[j].Name); cmp != 0 {
			return cmp < 0
		}
		return statuses[i].Hash.String() < statuses[j].Hash.String()
	})
	return statuses
}

func parseHashArgs(args []string) ([]rpc.InfoHash, error) {
	hashes := make([]rpc.InfoHash, 0, len(args))
	for _, arg := range args {
		hash, err := rpc.ParseInfoHash(strings.TrimSpace(arg))
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, hash)
	}
	return hashes, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
