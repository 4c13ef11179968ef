package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
	"github.com/olimci/followdiff/pkg/baseline"
	"github.com/olimci/followdiff/pkg/relationship"
	"github.com/olimci/followdiff/pkg/tracker"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	sectionStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func renderResult(res tracker.Result, links bool) {
	fmt.Printf("Archive %s (%s, %d entries)\n", res.ArchiveName, humanize.Bytes(uint64(res.ArchiveSize)), res.EntryCount)
	fmt.Printf("Following %d, followers %d\n", len(res.Following), len(res.Followers))

	if res.Diff == nil {
		fmt.Println()
		fmt.Println(noticeStyle.Render("Only one of following.json and followers_1.json has entries; nothing to compare."))
		renderStatus(res.Status)
		return
	}

	if res.Changes != nil {
		fmt.Println()
		renderChanges(*res.Changes, res.Baseline, res.SameArchive, links)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Current Snapshot"))
	renderList("Not Following You Back", res.Diff.NotFollowingBack, links)
	renderList("You Don't Follow Back", res.Diff.NotFollowedBack, links)
	renderList("Mutual Followers", res.Diff.Mutual, links)

	renderStatus(res.Status)
}

func renderChanges(changes relationship.Changes, snap *baseline.Snapshot, same bool, links bool) {
	heading := "Changes Since Last Upload"
	if snap != nil && !snap.CapturedAt.IsZero() {
		heading = fmt.Sprintf("%s (baseline from %s)", heading, humanize.Time(snap.CapturedAt))
	}
	fmt.Println(titleStyle.Render(heading))

	if same {
		fmt.Println(mutedStyle.Render("This is the same archive the baseline was taken from."))
	}
	if changes.Empty() {
		fmt.Println(mutedStyle.Render("  no changes"))
		return
	}

	renderList("Followers Not In Baseline", changes.NewUnfollows, links)
	renderList("New Followers", changes.NewFollowers, links)
	renderList("People You Unfollowed", changes.YouUnfollowed, links)
	renderList("New Mutual Followers", changes.NewMutual, links)
}

func renderList(title string, list relationship.List, links bool) {
	fmt.Println()
	fmt.Println(sectionStyle.Render(fmt.Sprintf("%s (%d)", title, len(list))))
	if len(list) == 0 {
		fmt.Println(mutedStyle.Render("  (none)"))
		return
	}

	if !links {
		for _, id := range list {
			fmt.Printf("  %s\n", id.Username)
		}
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("USERNAME", "PROFILE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, id := range list {
		url := id.ProfileURL
		if url == "" {
			url = "-"
		}
		t.Row(id.Username, url)
	}
	fmt.Println(t)
}

func renderStatus(msg string) {
	if msg == "" {
		return
	}
	fmt.Println()
	fmt.Println(statusStyle.Render(msg))
}

func renderSnapshot(snap baseline.Snapshot) {
	if snap.CapturedAt.IsZero() {
		fmt.Println("Baseline saved at an unknown time")
	} else {
		fmt.Printf("Baseline captured %s (%s)\n", humanize.Time(snap.CapturedAt), snap.CapturedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Followers %d, following %d\n", snap.FollowerSet().Len(), snap.FollowingSet().Len())
	if !snap.Archive.IsZero() {
		fmt.Printf("Archive %s\n", snap.Archive)
	}
}

func printJSON(v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
