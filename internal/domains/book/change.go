package book

// EqualContent reports whether two books agree on every mutable
// field. Price is compared by numeric value, not representation, and
// the published date by instant.
func (b *Book) EqualContent(other *Book) bool {
	return b.Title == other.Title &&
		b.Genre == other.Genre &&
		b.Price.Equal(other.Price) &&
		b.PublishedDate.Equal(other.PublishedDate) &&
		b.Available == other.Available &&
		b.AuthorID == other.AuthorID
}
