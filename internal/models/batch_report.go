package models

// BatchReport accumulates the per-kind counters for one feed ingestion.
// A single report travels through every sub-section processor of a batch;
// it is only returned to the caller when the whole feed applied cleanly.
type BatchReport struct {
	PersonsInserted      int `json:"persons_inserted"`
	PropertiesInserted   int `json:"properties_inserted"`
	OwnersAssociated     int `json:"owners_associated"`
	OwnersDisassociated  int `json:"owners_disassociated"`
	AccountMovementsRead int `json:"account_movements_read"`
	ReadingsInserted     int `json:"readings_inserted"`
}
