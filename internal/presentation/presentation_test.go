package presentation

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/sdktable/internal/sdk"
)

func sampleSdk() *sdk.Sdk {
	s := sdk.New("corretto-17", "JavaSDK")
	s.SetHomePath("/opt/corretto-17")
	s.SetVersion("17.0.9")
	s.SetAttribute("vendor", "Amazon")
	return s
}

func TestFromDomain(t *testing.T) {
	dto := FromDomain(sampleSdk(), OriginTable)

	require.Equal(t, SdkDTO{
		Name:       "corretto-17",
		Type:       "JavaSDK",
		Home:       "/opt/corretto-17",
		Version:    "17.0.9",
		Attributes: map[string]string{"vendor": "Amazon"},
	}, dto)

	require.True(t, FromDomain(sampleSdk(), OriginDerived).Derived)
	require.True(t, FromDomain(sampleSdk(), OriginInternal).Internal)
}

func TestFromDomain_NoAttributes(t *testing.T) {
	dto := FromDomain(sdk.New("go", "GoSDK"), OriginTable)
	require.Nil(t, dto.Attributes)
}

func TestFromDomainList_PreservesOrder(t *testing.T) {
	dtos := FromDomainList([]*sdk.Sdk{sdk.New("b", "JavaSDK"), sdk.New("a", "JavaSDK")})
	require.Len(t, dtos, 2)
	require.Equal(t, "b", dtos[0].Name)
	require.Equal(t, "a", dtos[1].Name)
}

func TestFormatSdks_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatSdks([]SdkDTO{FromDomain(sampleSdk(), OriginTable)}))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	require.Equal(t, "corretto-17", decoded[0]["name"])
	require.Equal(t, "/opt/corretto-17", decoded[0]["home"])
	require.NotContains(t, decoded[0], "derived")
	require.True(t, strings.HasPrefix(buf.String(), "[\n  {"))
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	dtos := []SdkDTO{
		FromDomain(sampleSdk(), OriginTable),
		FromDomain(sdk.New("zulu-8", "JavaSDK"), OriginDerived),
	}

	require.NoError(t, NewFormatter(&buf).FormatTable("SDK Table", dtos))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "SDK Table")
	require.Contains(t, lines[1], "NAME")
	require.Contains(t, lines[1], "HOME")
	require.Contains(t, lines[2], "corretto-17")
	require.Contains(t, lines[2], "17.0.9")
	require.Contains(t, lines[3], "zulu-8 (derived)")
}

func TestFormatTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatTable("", nil))
	require.Contains(t, buf.String(), "(no sdks)")
}

func TestFormatTypes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatTypes([]string{"JavaSDK", "GoSDK"}))
	require.Equal(t, "JavaSDK\nGoSDK\n", buf.String())
}
