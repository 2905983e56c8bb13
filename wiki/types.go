package wiki

// Page is a wiki page as returned by the content API.
type Page struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Body    Body    `json:"body"`
	Version Version `json:"version"`
	Space   Space   `json:"space"`
	Links   Links   `json:"_links"`
}

// Body carries the page body in storage representation (XHTML-based).
type Body struct {
	Storage Storage `json:"storage"`
}

// Storage is the storage-format payload of a page body.
type Storage struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

// Version is the remote store's version record for a page. Number is
// monotonically increasing and assigned by the store on every accepted
// write; this module never invents one.
type Version struct {
	Number int    `json:"number"`
	When   string `json:"when,omitempty"`
	By     Author `json:"by,omitempty"`
}

// Author identifies who made a page version.
type Author struct {
	DisplayName string `json:"displayName,omitempty"`
}

// Space is the collection a page belongs to. Read-only from this
// module's perspective.
type Space struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// Links holds the subset of hypermedia links the client uses.
type Links struct {
	WebUI    string `json:"webui,omitempty"`
	Download string `json:"download,omitempty"`
}

// SearchResult is one hit from a content search.
type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Attachment is metadata for a file attached to a page.
type Attachment struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	MediaType string `json:"mediaType,omitempty"`
	FileSize  int64  `json:"fileSize,omitempty"`
	Download  string `json:"download,omitempty"`
}

type contentList struct {
	Results []Page `json:"results"`
	Size    int    `json:"size"`
}

type attachmentList struct {
	Results []attachmentRecord `json:"results"`
}

type attachmentRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Metadata struct {
		MediaType string `json:"mediaType"`
	} `json:"metadata"`
	Extensions struct {
		FileSize int64 `json:"fileSize"`
	} `json:"extensions"`
	Links Links `json:"_links"`
}

type searchList struct {
	Results []searchRecord `json:"results"`
}

type searchRecord struct {
	Content struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Links Links  `json:"_links"`
	} `json:"content"`
	Excerpt string `json:"excerpt"`
}
