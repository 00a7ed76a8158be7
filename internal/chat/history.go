package chat

// Session is a past conversation listed on the History tab.
type Session struct {
	Title string
	When  string
}

// History returns the past sessions shown on the History tab, newest first.
func History() []Session {
	return []Session{
		{Title: "Project Analysis", When: "Yesterday at 3:24 PM"},
		{Title: "Research Questions", When: "April 15, 2023"},
		{Title: "Meeting Preparation", When: "April 10, 2023"},
	}
}
