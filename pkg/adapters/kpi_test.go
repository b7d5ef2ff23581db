package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

func TestMapManagerKPIDomainToApi_TATFormatting(t *testing.T) {
	avg := 3.47
	withTAT := MapManagerKPIDomainToApi(domain.ManagerKPI{Name: "Priya Nair", AvgResponseTAT: &avg})
	assert.Equal(t, "3.5", withTAT.AvgResponseTAT)

	withoutTAT := MapManagerKPIDomainToApi(domain.ManagerKPI{Name: "Tomas Weber"})
	assert.Equal(t, "N/A", withoutTAT.AvgResponseTAT)
}

func TestMapRollupNodeDomainToApi_Recursion(t *testing.T) {
	node := MapRollupNodeDomainToApi(domain.RollupNode{
		UserID:      "head",
		Name:        "Rashid Khan",
		Designation: domain.DesignationDepartmentHead,
		Score:       83,
		Reports: []domain.RollupNode{
			{UserID: "mgr", Name: "Priya Nair", Designation: domain.DesignationManager, Score: 70},
		},
	})

	assert.Equal(t, "Department Head", node.Designation)
	assert.Equal(t, 83, node.Score)
	if assert.Len(t, node.Reports, 1) {
		assert.Equal(t, "Priya Nair", node.Reports[0].Name)
		assert.Empty(t, node.Reports[0].Reports)
	}
}
