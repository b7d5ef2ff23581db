package adapters

import (
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/models/store"
)

const dateLayout = "2006-01-02"

func MapStoreAuditPlanToDomain(p store.AuditPlan) domain.AuditPlan {
	return domain.AuditPlan{
		ID:             p.ID,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Auditors:       p.Auditors,
		Auditees:       p.Auditees,
		AttachmentName: p.AttachmentName,
		Status:         domain.AuditPlanStatus(p.Status),
		IsLocked:       p.IsLocked,
		CreatedAt:      p.CreatedAt,
		AuditType:      domain.AuditType(p.AuditType),
		ProcessName:    p.ProcessName,
	}
}

func MapDomainAuditPlanToStore(p domain.AuditPlan) store.AuditPlan {
	return store.AuditPlan{
		ID:             p.ID,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Auditors:       p.Auditors,
		Auditees:       p.Auditees,
		AttachmentName: p.AttachmentName,
		Status:         string(p.Status),
		IsLocked:       p.IsLocked,
		CreatedAt:      p.CreatedAt,
		AuditType:      string(p.AuditType),
		ProcessName:    p.ProcessName,
	}
}

func MapStoreAuditPlansToDomain(ps []store.AuditPlan) []domain.AuditPlan {
	out := make([]domain.AuditPlan, 0, len(ps))
	for _, p := range ps {
		out = append(out, MapStoreAuditPlanToDomain(p))
	}
	return out
}

func MapAuditPlanDomainToApi(p domain.AuditPlan) api.AuditPlan {
	return api.AuditPlan{
		ID:             p.ID,
		StartDate:      p.StartDate.Format(dateLayout),
		EndDate:        p.EndDate.Format(dateLayout),
		Auditors:       p.Auditors,
		Auditees:       p.Auditees,
		AttachmentName: p.AttachmentName,
		Status:         string(p.Status),
		IsLocked:       p.IsLocked,
		CreatedAt:      p.CreatedAt,
		AuditType:      string(p.AuditType),
		ProcessName:    p.ProcessName,
	}
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
