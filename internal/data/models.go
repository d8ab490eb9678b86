package data

import "time"

// User is a back-office credential. Password holds a bcrypt hash, never plaintext.
type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
}

// Category groups documents for the download page filter.
type Category struct {
	ID   int64  `db:"c_id"`
	Name string `db:"category"`
}

// Document is an uploaded file stored as a blob. Content is omitted from list
// queries and only loaded for a single-document fetch.
type Document struct {
	ID         int64     `db:"id"`
	Filename   string    `db:"document_filename"`
	Content    []byte    `db:"document"`
	CategoryID int64     `db:"category_id"`
	UploadedAt time.Time `db:"upl_date"`
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Message string `db:"message"`
}

// PageInformation is the profile record rendered on the home page.
// The home page reads the first row by id; no single-row constraint is enforced.
type PageInformation struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	Job        string `db:"job"`
	Slogan     string `db:"slogan"`
	AboutMe    string `db:"aboutme"`
	ProfileURL string `db:"profile_url"`
	AboutMeURL string `db:"about_me_url"`
}

// ContactInfo is an external link (social profile, email, etc.) shown on the home page.
type ContactInfo struct {
	ID      int64  `db:"id"`
	AppName string `db:"app_name"`
	Link    string `db:"link"`
}

// ProfileAbout is one section of the profile page. Detail uses a literal "/n"
// sequence as a paragraph delimiter; splitting happens in the service layer.
type ProfileAbout struct {
	ID     int64  `db:"id"`
	Title  string `db:"title"`
	Detail string `db:"detail"`
}
