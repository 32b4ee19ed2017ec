// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// inspect.go - The "inspect" command: capture and classify live pages.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jeranaias/certbadge/internal/detail"
	"github.com/jeranaias/certbadge/internal/events"
	"github.com/jeranaias/certbadge/internal/model"
	"github.com/jeranaias/certbadge/internal/trust"
	"github.com/jeranaias/certbadge/internal/ui/components"
	"github.com/jeranaias/certbadge/internal/ui/styles"
)

const inspectUsage = "certbadge inspect https://example.com [--json] [--markdown]"

// Prober captures a live connection. *provider.TLS implements it.
type Prober interface {
	Probe(ctx context.Context, rawURL string) (ProbeResult, error)
}

// ProbeResult is the record and status line of one probe.
type ProbeResult struct {
	Record     model.ConnectionRecord
	StatusLine string
}

// HandleInspect handles "certbadge inspect <url>...".
func HandleInspect(ctx context.Context, args Args, rt *Runtime) error {
	live := rt.Provider()
	return runInspect(ctx, args, rt, proberFunc(func(ctx context.Context, url string) (ProbeResult, error) {
		p, err := live.Probe(ctx, url)
		return ProbeResult{Record: p.Record, StatusLine: p.StatusLine}, err
	}), os.Stdout)
}

type proberFunc func(ctx context.Context, rawURL string) (ProbeResult, error)

func (f proberFunc) Probe(ctx context.Context, rawURL string) (ProbeResult, error) {
	return f(ctx, rawURL)
}

func runInspect(ctx context.Context, args Args, rt *Runtime, prober Prober, out io.Writer) error {
	parser := NewArgParser(args.Raw, "json", "markdown")
	urls := parser.PositionalFrom(0)
	if len(urls) == 0 {
		return ErrMissingArgument("url", inspectUsage)
	}
	jsonMode := args.JSON || parser.BoolFlag("json")
	markdown := rt.Config.UI.Markdown || parser.BoolFlag("markdown")

	results := make([]InspectData, 0, len(urls))
	var lastErr error
	for i, url := range urls {
		res := inspectOne(ctx, rt, prober, strconv.Itoa(i+1), url)
		if res.Error != "" {
			lastErr = NewCommandError("inspect", url, res.Error, res.err)
		}
		results = append(results, res.InspectData)

		if !jsonMode {
			printInspect(out, res.InspectData, markdown, rt.Config.UI.Width)
		}
	}

	if jsonMode {
		resp := NewJSONResponse("inspect", results)
		if lastErr != nil {
			msg := lastErr.Error()
			resp.Success = false
			resp.Error = &msg
		}
		if err := resp.Print(); err != nil {
			return err
		}
	}
	return lastErr
}

type inspectResult struct {
	InspectData
	err error
}

// inspectOne runs url through the page lifecycle on its own page so the
// store, and the journal observing it, see a normal load.
func inspectOne(ctx context.Context, rt *Runtime, prober Prober, pageID, url string) inspectResult {
	probe, probeErr := prober.Probe(ctx, url)

	disp := rt.Dispatcher(ctx, events.ProviderFunc(func(context.Context, events.Request) (model.ConnectionRecord, error) {
		return probe.Record, probeErr
	}))
	disp.Dispatch(events.ActivatedMsg{PageID: pageID})
	disp.Dispatch(events.NavigationMsg{PageID: pageID, URL: url, State: events.NavigationLoading})
	disp.Dispatch(events.HeadersReceivedMsg{PageID: pageID, MainFrame: true, URL: url, StatusLine: probe.StatusLine})
	disp.Dispatch(events.NavigationMsg{PageID: pageID, URL: url, State: events.NavigationComplete})
	defer disp.Dispatch(events.ClosedMsg{PageID: pageID})

	res := inspectResult{InspectData: InspectData{URL: url, Badge: disp.Badge(pageID)}}
	if probeErr != nil {
		res.err = probeErr
		res.Error = probeErr.Error()
		res.Assessment = trust.Assessment{Level: trust.LevelInsecure}
		return res
	}

	res.Assessment = trust.Assess(probe.Record)
	m, notice := disp.OpenDetailFor(pageID)
	res.Notice = notice
	if notice == detail.NoticeNone {
		res.Detail = &m
	}
	return res
}

func printInspect(out io.Writer, res InspectData, markdown bool, width int) {
	fmt.Fprintln(out, TitleStyle.Render(res.URL))
	if res.Error != "" {
		fmt.Fprintf(out, "  %s %s\n\n", ErrorStyle.Render("[X]"), res.Error)
		return
	}

	badge := components.NewBadge()
	badge.SetDescriptor(res.Badge)
	fmt.Fprintf(out, "  %s %s\n", badge.ViewCompact(), RenderLevel(res.Assessment.Level))
	if res.Assessment.Reason != "" {
		fmt.Fprintf(out, "  %s\n", DimStyle.Render(res.Assessment.Reason))
	}

	if res.Detail == nil {
		if res.Notice != detail.NoticeNone {
			fmt.Fprintf(out, "  %s\n", styles.RenderNotice(string(res.Notice)))
		}
		fmt.Fprintln(out)
		return
	}

	if markdown {
		fmt.Fprintln(out, renderMarkdown(detail.Markdown(*res.Detail), width))
		return
	}

	view := components.NewDetailView(styles.DefaultTheme)
	if width <= 0 {
		width = GetTerminalWidth()
	}
	view.SetWidth(width - 2)
	view.SetModel(*res.Detail, detail.NoticeNone)
	for i := 0; i < view.CertificateCount(); i++ {
		if !view.Expanded(i) {
			view.ToggleCertificate(i)
		}
	}
	fmt.Fprintln(out, view.Render())
	fmt.Fprintln(out)
}
