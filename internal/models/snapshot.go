package models

// ExportSnapshot is the full structured dump of every persisted collection,
// produced by the master-only export and by scheduled backups
type ExportSnapshot struct {
	GeneratedAt string            `json:"generated_at"`
	Users       map[string]string `json:"users"`
	Records     []BillRecord      `json:"records"`
	Settings    Settings          `json:"settings"`
}
