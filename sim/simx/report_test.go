package simx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robknapen/WISS-Framework/sim/unit"
)

func TestReport_BareColumnCaption_WhenNameIsUnique(t *testing.T) {
	sx := New("r", 1)
	sx.SetDatePeriod(d(2020, 1, 1), 2)
	sx.Reset()
	sx.RegisterSimID("A", "ModuleA", 0)

	h := NewStateHandle("A", "YIELD", unit.KG_HA, 0, 1e6)
	h.V = 10.0
	sx.ForceState(h)

	var buf bytes.Buffer
	err := sx.Report(&buf, DefaultReportConfig("run-1"))
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "DATE\tELAPSED\tYIELD\n")
}

func TestReport_PrefixedColumnCaption_WhenNameIsShared(t *testing.T) {
	sx := New("r", 1)
	sx.SetDatePeriod(d(2020, 1, 1), 2)
	sx.Reset()
	sx.RegisterSimID("A", "ModuleA", 0)
	sx.RegisterSimID("B", "ModuleB", 0)

	ha := NewAuxHandle("A", "X", unit.NODIM, -1e6, 1e6)
	ha.V = 1.0
	sx.SetAux(ha)

	sx.TerminateSimID("A", false, "")

	hb := NewAuxHandle("B", "X", unit.NODIM, -1e6, 1e6)
	hb.V = 2.0
	sx.SetAux(hb)

	var buf bytes.Buffer
	err := sx.Report(&buf, DefaultReportConfig("run-1"))
	assert.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.Contains(out, "A.X") && strings.Contains(out, "B.X"))
}

func TestReport_ForcedStateSection_OnlyAppearsWhenSomethingChanged(t *testing.T) {
	sx := New("r", 1)
	sx.SetDatePeriod(d(2020, 1, 1), 2)
	sx.Reset()
	sx.RegisterSimID("A", "ModuleA", 0)

	h := NewStateHandle("A", "YIELD", unit.KG_HA, 0, 1e6)
	h.V = 10.0
	sx.ForceState(h)

	var buf bytes.Buffer
	err := sx.Report(&buf, DefaultReportConfig("run-1"))
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Time series of forced state and auxiliary variables")
}

func TestReport_MissingDay_UsesEmptyValuePlaceholder(t *testing.T) {
	sx := New("r", 1)
	sx.SetDatePeriod(d(2020, 1, 1), 2)
	sx.Reset()
	sx.RegisterSimID("A", "ModuleA", 0)

	h := NewAuxHandle("A", "X", unit.NODIM, -1e6, 1e6)
	h.V = 1.0
	sx.SetAux(h)
	// day 0 only; day 1 is never written.
	sx.curDateIndex = 1

	var buf bytes.Buffer
	err := sx.Report(&buf, DefaultReportConfig("run-1"))
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "2020-01-02\t1\t-\n")
}
