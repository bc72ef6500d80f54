package services

import (
	"context"

	"github.com/dquesadam/catastro-api/internal/feed"
	"github.com/dquesadam/catastro-api/internal/models"
)

// Movement-type codes on ownership movements. Codes "1" and "3" both route to
// associate; the upstream system emits them as distinct association kinds but
// has always applied them identically. The type code is preserved on the row
// so they stay distinguishable in storage.
const (
	movementCodeAssociate    = "1"
	movementCodeDisassociate = "2"
	movementCodeAssociateAlt = "3"
)

// routeMovement classifies one ownership movement by its type code and
// dispatches it to the matching registry primitive. The decision is a pure
// function of the record: unknown codes are skipped without error and without
// touching the counters. The counter is incremented only after the registry
// call succeeds.
func (s *ingestService) routeMovement(ctx context.Context, m feed.MovementRecord, report *models.BatchReport) error {
	switch m.AssociationTypeID {
	case movementCodeAssociate, movementCodeAssociateAlt:
		if err := s.registry.AssociateOwner(ctx, m.DocumentValue, m.ParcelNumber, m.AssociationTypeID); err != nil {
			return err
		}
		report.OwnersAssociated++
	case movementCodeDisassociate:
		if err := s.registry.DisassociateOwner(ctx, m.DocumentValue, m.ParcelNumber); err != nil {
			return err
		}
		report.OwnersDisassociated++
	default:
		s.log.Debug("Skipping movement with unknown type code", map[string]interface{}{
			"code":          m.AssociationTypeID,
			"document":      m.DocumentValue,
			"parcel_number": m.ParcelNumber,
		})
	}
	return nil
}
