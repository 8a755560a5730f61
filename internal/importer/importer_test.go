package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"mtys/internal/store"
	"mtys/pkg/types"
)

type fakeMuhtarStore struct {
	rows       []types.MuhtarInfo
	replaceErr error
	replaced   [][]types.MuhtarInfo
}

func (f *fakeMuhtarStore) All(ctx context.Context) ([]types.MuhtarInfo, error) {
	return f.rows, nil
}

func (f *fakeMuhtarStore) Replace(ctx context.Context, rows []types.MuhtarInfo) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = append(f.replaced, rows)
	return nil
}

type fakeRequestCreator struct {
	created []types.RequestInput
	failOn  map[int]error // 1-based call number
	calls   int
}

func (f *fakeRequestCreator) Create(ctx context.Context, input *types.RequestInput) (*types.Request, error) {
	f.calls++
	if err, ok := f.failOn[f.calls]; ok {
		return nil, err
	}
	f.created = append(f.created, *input)
	return &types.Request{
		ID:      fmt.Sprintf("id-%d", f.calls),
		TalepNo: store.FormatTalepNo(f.calls),
	}, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testImporter(muhtars *fakeMuhtarStore, requests *fakeRequestCreator) *Importer {
	return New(muhtars, requests, testLogger())
}

func TestReplaceMuhtarsDelegatesWholesale(t *testing.T) {
	muhtars := &fakeMuhtarStore{}
	im := testImporter(muhtars, &fakeRequestCreator{})

	rows := []types.MuhtarInfo{{IlceAdi: "akyurt", MahalleAdi: "Merkez", MuhtarAdi: "Ali Veli", MuhtarTelefonu: "5551112233"}}
	require.NoError(t, im.ReplaceMuhtars(context.Background(), rows))
	require.Len(t, muhtars.replaced, 1)
	require.Equal(t, rows, muhtars.replaced[0])
}

func TestReplaceMuhtarsSurfacesFailure(t *testing.T) {
	muhtars := &fakeMuhtarStore{replaceErr: errors.New("boom")}
	im := testImporter(muhtars, &fakeRequestCreator{})

	err := im.ReplaceMuhtars(context.Background(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}

func TestImportRequestsPopulatesMuhtarCaseInsensitive(t *testing.T) {
	muhtars := &fakeMuhtarStore{rows: []types.MuhtarInfo{
		{IlceAdi: "AKYURT", MahalleAdi: "MERKEZ", MuhtarAdi: "Ali Veli", MuhtarTelefonu: "5551112233"},
	}}
	requests := &fakeRequestCreator{}
	im := testImporter(muhtars, requests)

	rows := []types.RequestInput{
		{IlceAdi: "akyurt", MahalleAdi: "merkez", TalepKonusu: "Diğer"},
		{IlceAdi: "Sincan", MahalleAdi: "Fatih", TalepKonusu: "Diğer"},
	}

	result, err := im.ImportRequests(context.Background(), rows, ContinueOnError, "operator1")
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Empty(t, result.Failed)

	require.Equal(t, "Ali Veli", requests.created[0].MuhtarAdi)
	require.Equal(t, "5551112233", requests.created[0].MuhtarTelefonu)
	// no directory match is not an error, both fields stay empty
	require.Equal(t, "", requests.created[1].MuhtarAdi)
	require.Equal(t, "", requests.created[1].MuhtarTelefonu)
}

func TestImportRequestsTurkishFolding(t *testing.T) {
	muhtars := &fakeMuhtarStore{rows: []types.MuhtarInfo{
		{IlceAdi: "SİNCAN", MahalleAdi: "İSTASYON", MuhtarAdi: "Mehmet Kaya", MuhtarTelefonu: "5559998877"},
	}}
	requests := &fakeRequestCreator{}
	im := testImporter(muhtars, requests)

	rows := []types.RequestInput{{IlceAdi: "sincan", MahalleAdi: "istasyon"}}

	result, err := im.ImportRequests(context.Background(), rows, ContinueOnError, "")
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)
	require.Equal(t, "Mehmet Kaya", requests.created[0].MuhtarAdi)
}

func TestImportRequestsContinueOnErrorCollectsRows(t *testing.T) {
	muhtars := &fakeMuhtarStore{}
	requests := &fakeRequestCreator{failOn: map[int]error{2: errors.New("insert rejected")}}
	im := testImporter(muhtars, requests)

	rows := make([]types.RequestInput, 3)
	result, err := im.ImportRequests(context.Background(), rows, ContinueOnError, "op")
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Len(t, result.Failed, 1)
	require.Equal(t, 2, result.Failed[0].Row)
	require.Contains(t, result.Failed[0].Err.Error(), "insert rejected")
}

func TestImportRequestsAbortOnErrorStops(t *testing.T) {
	muhtars := &fakeMuhtarStore{}
	requests := &fakeRequestCreator{failOn: map[int]error{2: errors.New("insert rejected")}}
	im := testImporter(muhtars, requests)

	rows := make([]types.RequestInput, 3)
	result, err := im.ImportRequests(context.Background(), rows, AbortOnError, "op")
	require.Error(t, err)
	require.Equal(t, 1, result.Imported)
	require.Len(t, result.Failed, 1)
	require.Equal(t, 2, requests.calls) // third row never attempted
}

func TestImportRequestsActorFillsBlankGuncelleyen(t *testing.T) {
	muhtars := &fakeMuhtarStore{}
	requests := &fakeRequestCreator{}
	im := testImporter(muhtars, requests)

	rows := []types.RequestInput{
		{Guncelleyen: ""},
		{Guncelleyen: "from-file"},
	}

	_, err := im.ImportRequests(context.Background(), rows, ContinueOnError, "operator1")
	require.NoError(t, err)
	require.Equal(t, "operator1", requests.created[0].Guncelleyen)
	require.Equal(t, "from-file", requests.created[1].Guncelleyen)
}
