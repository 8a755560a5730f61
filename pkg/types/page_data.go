package types

// NavbarData is shared by every rendered page.
type NavbarData struct {
	IsAuthenticated bool
	Username        string
	Role            Role
}

func (n NavbarData) IsAdmin() bool {
	return n.Role == RoleAdmin
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

// BasePageData carries the navbar plus the flash strings most handlers
// redirect with.
type BasePageData struct {
	Navbar NavbarData
	Error  string
	Notice string
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

type LoginPageData struct {
	BasePageData
}

type DashboardPageData struct {
	BasePageData
	Requests []*Request
	Stats    *RequestStats
}

type RequestFormPageData struct {
	BasePageData
	Request  *Request
	Channels []Channel
	Outcomes []Outcome
	IsEdit   bool
}

type UploadPageData struct {
	BasePageData
}

type LogsPageData struct {
	BasePageData
	Request *Request
	Entries []*LogEntry
}

type AdminPageData struct {
	BasePageData
	Users   []*User
	Entries []*LogEntry
	Roles   []Role
}
