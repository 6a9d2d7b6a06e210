package app

import (
	"context"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCSV(t *testing.T) {
	repo := &fakeClientRepo{}
	log, _ := logtest.NewNullLogger()
	svc := NewClientService(repo, log)

	data := "name,phone,service,expiration_date\n" +
		"Jean,+50937000001,Netflix,2024-06-10\n" +
		"Marie,+50937000002,Spotify,2024-07-01\n"

	count, err := svc.ImportCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, repo.clients, 2)
	assert.Equal(t, "Jean", repo.clients[0].Name)
	assert.True(t, repo.clients[0].Active)
	assert.Equal(t, date("2024-06-10"), repo.clients[0].ExpirationDate)
}

func TestImportCSV_SkipsBadRows(t *testing.T) {
	repo := &fakeClientRepo{}
	log, _ := logtest.NewNullLogger()
	svc := NewClientService(repo, log)

	data := "name,phone,service,expiration_date\n" +
		"Jean,+50937000001,Netflix,2024-06-10\n" +
		"Broken,+50937000002,Spotify,not-a-date\n" +
		"Marie,+50937000003,Disney+,2024-07-01\n"

	count, err := svc.ImportCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, repo.clients, 2)
	assert.Equal(t, "Marie", repo.clients[1].Name)
}

func TestImportCSV_ColumnOrderIndependent(t *testing.T) {
	repo := &fakeClientRepo{}
	log, _ := logtest.NewNullLogger()
	svc := NewClientService(repo, log)

	data := "expiration_date,service,phone,name\n" +
		"2024-06-10,Netflix,+50937000001,Jean\n"

	count, err := svc.ImportCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "Jean", repo.clients[0].Name)
	assert.Equal(t, "+50937000001", repo.clients[0].Phone)
}

func TestImportCSV_MissingColumn(t *testing.T) {
	repo := &fakeClientRepo{}
	log, _ := logtest.NewNullLogger()
	svc := NewClientService(repo, log)

	data := "name,phone,service\nJean,+509,Netflix\n"

	_, err := svc.ImportCSV(context.Background(), strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expiration_date")
}
