package news

// Source is a syndication endpoint we pull entries from.
type Source struct {
	Name string
	URL  string
}

// Item is one flattened feed entry. Summary may carry HTML.
type Item struct {
	Source  string
	Title   string
	Link    string
	Summary string
}
