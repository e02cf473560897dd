package domain

import "fmt"

// NoTab means no header tab is highlighted
const NoTab = -1

// TabRevolution is the header tab index of the revolution page
const TabRevolution = 2

// Navigation mirrors the shell's header highlight for this visitor
type Navigation struct {
	Value         int `json:"value"`
	SelectedIndex int `json:"selected_index"`
}

// SetValue implements Navigator
func (n *Navigation) SetValue(tab int) {
	n.Value = tab
}

// SetSelectedIndex implements Navigator
func (n *Navigation) SetSelectedIndex(index int) {
	n.SelectedIndex = index
}

// Link is an outbound affordance on the contact page
type Link string

const (
	LinkLearnMore    Link = "learn-more"
	LinkFreeEstimate Link = "free-estimate"
)

// LinkTarget describes where a link goes and what it does on the way
type LinkTarget struct {
	Href  string
	Tab   int
	Event *AnalyticsEvent
}

var linkTargets = map[Link]LinkTarget{
	LinkLearnMore:    {Href: "/revolution", Tab: TabRevolution},
	LinkFreeEstimate: {Href: "/estimate", Tab: NoTab, Event: &EventEstimatePressed},
}

// ResolveLink looks up a contact page link
func ResolveLink(s string) (Link, LinkTarget, error) {
	l := Link(s)
	t, ok := linkTargets[l]
	if !ok {
		return "", LinkTarget{}, fmt.Errorf("%w: %q", ErrUnknownLink, s)
	}
	return l, t, nil
}
