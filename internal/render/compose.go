package render

import (
	"fmt"

	"github.com/tabi-shiori/shiori/internal/icon"
	"github.com/tabi-shiori/shiori/internal/mapembed"
	"github.com/tabi-shiori/shiori/internal/model"
)

// Compose builds the page view of trip. It never mutates trip and keeps
// days, rows, budget lines and notes in input order.
// maps may be nil, in which case route maps are built without an API key.
func Compose(trip *model.Trip, maps *mapembed.Builder) (*Page, error) {
	if maps == nil {
		maps = mapembed.New("", "", "")
	}

	page := &Page{
		Title:    trip.Title,
		Heading:  trip.Page.Heading,
		Subtitle: trip.Page.Subtitle,
		Icon:     trip.Page.Icon,
		Days:     make([]DayCard, 0, len(trip.Days)),
		Budget:   composeBudget(trip.Budget),
		Notes:    composeNotes(trip.Notes),
		Footer:   trip.Page.Footer,
	}
	if page.Heading == "" {
		page.Heading = trip.Title
	}

	for _, d := range trip.Days {
		card, err := composeDay(d, maps)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", d.Day, err)
		}
		page.Days = append(page.Days, card)
	}

	return page, nil
}

func composeDay(d model.Day, maps *mapembed.Builder) (DayCard, error) {
	card := DayCard{
		Number: d.Day,
		Title:  d.Title,
		Header: fmt.Sprintf("Day %d: %s", d.Day, d.Title),
		Icon:   d.Icon,
		Rows:   make([]TimelineRow, len(d.Schedule)),
	}

	if d.HasRoute() {
		u, err := maps.URL(d.Route)
		if err != nil {
			return DayCard{}, err
		}
		card.Map = &MapEmbed{
			URL:            u,
			Title:          fmt.Sprintf("Day %d %s", d.Day, mapTitle),
			Loading:        MapLoading,
			ReferrerPolicy: MapReferrerPolicy,
			Sandbox:        MapSandbox,
		}
		card.ScheduleHeading = ScheduleHeading
	}

	for i, e := range d.Schedule {
		card.Rows[i] = composeRow(e, i == len(d.Schedule)-1)
	}
	return card, nil
}

func composeRow(e model.ScheduleEntry, isLast bool) TimelineRow {
	return TimelineRow{
		Time:      e.Time,
		Event:     e.Event,
		Icon:      e.Icon,
		URL:       e.URL,
		Connector: !isLast,
	}
}

func composeBudget(b model.Budget) BudgetPanel {
	panel := BudgetPanel{
		Title:      b.Title,
		Icon:       icon.Wallet,
		Items:      make([]BudgetLine, len(b.Items)),
		TotalLabel: TotalLabel,
		Total:      b.Total,
	}
	for i, item := range b.Items {
		panel.Items[i] = BudgetLine{Item: item.Item, Cost: item.Cost}
	}
	return panel
}

func composeNotes(n model.Notes) NotesPanel {
	items := make([]string, len(n.Items))
	copy(items, n.Items)
	return NotesPanel{Title: n.Title, Icon: icon.ClipboardList, Items: items}
}
