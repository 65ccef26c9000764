package management

// DialogManager tracks the add-company and details dialogs.
type DialogManager struct {
	addOpen     bool
	detailsOpen bool
	selected    *Company
}

// NewDialogManager returns a manager with both dialogs closed.
func NewDialogManager() *DialogManager { return &DialogManager{} }

// AddOpen reports whether the add-company dialog is shown.
func (d *DialogManager) AddOpen() bool { return d.addOpen }

// DetailsOpen reports whether the details dialog is shown.
func (d *DialogManager) DetailsOpen() bool { return d.detailsOpen }

// Selected returns the record last opened in the details dialog. It stays set
// after the dialog closes.
func (d *DialogManager) Selected() (Company, bool) {
	if d.selected == nil {
		return Company{}, false
	}
	return *d.selected, true
}

func (d *DialogManager) openAdd()  { d.addOpen = true }
func (d *DialogManager) closeAdd() { d.addOpen = false }

func (d *DialogManager) openDetails(c Company) {
	d.selected = &c
	d.detailsOpen = true
}

func (d *DialogManager) closeDetails() { d.detailsOpen = false }
