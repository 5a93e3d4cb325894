// Package view abstracts the screen the bill services report to.
package view

const (
	RouteBills   = "#employee/bills"
	RouteNewBill = "#employee/bill/new"
)

// Port is what the services can do to the employee's screen.
type Port interface {
	Alert(message string)
	ClearFileInput()
	Navigate(route string)
	ShowImageModal(url string)
}

// Recorder is a Port that keeps every interaction so a transport can replay it
// in its response.
type Recorder struct {
	Alerts         []string
	FileCleared    bool
	Routes         []string
	ModalImageURLs []string
}

func (r *Recorder) Alert(message string) {
	r.Alerts = append(r.Alerts, message)
}

func (r *Recorder) ClearFileInput() {
	r.FileCleared = true
}

func (r *Recorder) Navigate(route string) {
	r.Routes = append(r.Routes, route)
}

func (r *Recorder) ShowImageModal(url string) {
	r.ModalImageURLs = append(r.ModalImageURLs, url)
}

// Rejected reports whether anything was alerted.
func (r *Recorder) Rejected() bool {
	return len(r.Alerts) > 0
}

// Redirect returns the last route navigated to, or "".
func (r *Recorder) Redirect() string {
	if len(r.Routes) == 0 {
		return ""
	}
	return r.Routes[len(r.Routes)-1]
}
