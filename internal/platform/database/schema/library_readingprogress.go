package schema

// LibraryReadingProgressTable represents the 'library.readingprogress' table
type LibraryReadingProgressTable struct {
	Table         string
	ID            string
	UserID        string
	MangaID       string
	ChapterID     string
	ChapterNumber string
	PageIndex     string
	TotalPages    string
	UpdatedAt     string
}

// LibraryReadingProgress is the schema definition for library.readingprogress
var LibraryReadingProgress = LibraryReadingProgressTable{
	Table:         "library.readingprogress",
	ID:            "id",
	UserID:        "userid",
	MangaID:       "mangaid",
	ChapterID:     "chapterid",
	ChapterNumber: "chapternumber",
	PageIndex:     "pageindex",
	TotalPages:    "totalpages",
	UpdatedAt:     "updatedat",
}
