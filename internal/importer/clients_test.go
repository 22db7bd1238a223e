package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/roastery/internal/importer"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

func TestParseClients(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  []schema.InsertClient
	}

	tests := []testCase{
		{
			name:  "CommaSeparated",
			input: "Name,Cafe Name,Email\nAna Ribeiro,Grão Fino,ana@example.com\nBruno,,\n",
			want: []schema.InsertClient{
				{Name: "Ana Ribeiro", CafeName: new("Grão Fino"), Email: new("ana@example.com")},
				{Name: "Bruno"},
			},
		},
		{
			name:  "SemicolonWithPreamble",
			input: "Exported 2024-03-01;;\n\nNAME; Address ;Phone\nAna;Rua Augusta 10;912345678\n",
			want: []schema.InsertClient{
				{Name: "Ana", Address: new("Rua Augusta 10"), Phone: new("912345678")},
			},
		},
		{
			name:  "BlankRowsSkipped",
			input: "name,cafe\n,\nAna,Central\n , \n",
			want: []schema.InsertClient{
				{Name: "Ana", CafeName: new("Central")},
			},
		},
		{
			name:  "UnknownColumnsIgnored",
			input: "id,name,notes\n7,Ana,regular\n",
			want:  []schema.InsertClient{{Name: "Ana"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.ParseClients(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClients_Errors(t *testing.T) {
	type testCase struct {
		name      string
		input     string
		wantField string
		wantMsg   string
	}

	tests := []testCase{
		{
			name:      "MissingName",
			input:     "name,cafe\nAna,Central\n,Orphan Café\n",
			wantField: "name",
			wantMsg:   "row 3: name is required",
		},
		{
			name:      "NoHeader",
			input:     "cafe,address\nCentral,Rua 1\n",
			wantField: "file",
			wantMsg:   "no header row with a name column",
		},
		{
			name:      "HeaderOnly",
			input:     "name\n",
			wantField: "file",
			wantMsg:   "no client rows found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.ParseClients(strings.NewReader(tt.input))

			ve, ok := schema.AsValidation(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}
