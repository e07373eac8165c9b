package costs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosts "github.com/jhoicas/Mantenix-api/internal/application/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

func TestDiff_SinCambiosEsVacio(t *testing.T) {
	base := []*entity.CostItem{manualItem("c1", "2", 500), manualItem("c2", "1", 300)}
	d := appcosts.NewDraft("wo-1", base)
	ch := d.Diff()
	assert.True(t, ch.Empty())
}

func TestDiff_ParticionDisjuntaYCompleta(t *testing.T) {
	base := []*entity.CostItem{
		manualItem("c1", "2", 500), // se modificará
		manualItem("c2", "1", 300), // se borrará
		manualItem("c3", "1", 700), // queda intacta
	}
	d := appcosts.NewDraft("wo-1", base)
	require.NoError(t, d.SetQuantity("c1", qty("4")))
	_, err := d.Remove("c2")
	require.NoError(t, err)
	nueva := d.AddBlank("user-1")
	require.NoError(t, d.SetDescription(nueva.Ref, "repuesto extra"))

	ch := d.Diff()
	require.Len(t, ch.New, 1)
	require.Len(t, ch.Updated, 1)
	require.Len(t, ch.Deleted, 1)
	assert.Equal(t, nueva.Ref, ch.New[0].Ref)
	assert.Equal(t, "c1", ch.Updated[0].Ref)
	assert.Equal(t, "c2", ch.Deleted[0].Ref)

	// Disjuntos: ninguna ref se repite entre conjuntos.
	seen := map[string]int{}
	for _, di := range ch.New {
		seen[di.Ref]++
	}
	for _, di := range ch.Updated {
		seen[di.Ref]++
	}
	for _, di := range ch.Deleted {
		seen[di.Ref]++
	}
	for ref, n := range seen {
		assert.Equal(t, 1, n, "ref %s aparece en más de un conjunto", ref)
	}
}

// IsModified sin cambio real de campos no comete update: la entrada va al
// conjunto Skipped para que el commit la reporte como omitida.
func TestDiff_ModificadaSinCambioRealSeOmite(t *testing.T) {
	base := []*entity.CostItem{manualItem("c1", "2", 500)}
	d := appcosts.NewDraft("wo-1", base)
	// Ida y vuelta: queda igual que el baseline aunque IsModified=true.
	require.NoError(t, d.SetQuantity("c1", qty("9")))
	require.NoError(t, d.SetQuantity("c1", qty("2")))
	assert.True(t, d.Get("c1").IsModified)

	ch := d.Diff()
	assert.True(t, ch.Empty(), "sin operaciones de red que emitir")
	require.Len(t, ch.Skipped, 1)
	assert.Equal(t, "c1", ch.Skipped[0].Ref)
}

func TestDiff_AddFilledNoSeComete(t *testing.T) {
	d := appcosts.NewDraft("wo-1", nil)
	// Línea ya confirmada del lado del servidor (consumo inmediato).
	d.AddFilled(linkedItem("c9", "inv-1", "1", 1999))
	ch := d.Diff()
	assert.True(t, ch.Empty(), "AddFilled entra al baseline, el commit no debe re-crearla")
}
