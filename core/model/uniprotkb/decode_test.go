package uniprotkb

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"uniprotstream/core/intern"
	"uniprotstream/core/model"
	"uniprotstream/core/xmlerr"
)

func TestDecode_MinimalEntry(t *testing.T) {
	frame := []byte(`<entry dataset="Swiss-Prot" xmlns="http://uniprot.org/uniprot">
<accession>P00001</accession>
<name>CYC_HUMAN</name>
<sequence length="4" mass="500" checksum="ABCD">MGDV</sequence>
</entry>`)

	e, err := Decode(frame, nil, model.Options{})
	require.NoError(t, err)
	require.Equal(t, DatasetSwissProt, e.Dataset)
	require.Equal(t, []string{"P00001"}, e.Accessions)
	require.Equal(t, "CYC_HUMAN", e.Name)
	require.Equal(t, int64(4), e.Sequence.Length)
	require.Equal(t, "MGDV", e.Sequence.Residues)
}

func TestDecode_InvalidCreatedDateIsDecodeError(t *testing.T) {
	frame := []byte(`<entry dataset="Swiss-Prot" xmlns="x">
<accession>P00500</accession>
<created value="2021-13-01"/>
</entry>`)

	_, err := Decode(frame, nil, model.Options{})
	require.Error(t, err)
	require.True(t, xmlerr.IsKind(err, xmlerr.KindDecode))
	var xerr *xmlerr.Error
	require.ErrorAs(t, err, &xerr)
	require.Contains(t, xerr.Path, "created")
}

func TestDecode_ProteinDescriptionAndGenes(t *testing.T) {
	frame := []byte(`<entry dataset="Swiss-Prot" xmlns="x">
<accession>P00002</accession>
<protein>
  <recommendedName><fullName>Cytochrome c</fullName><shortName>CYC</shortName></recommendedName>
  <alternativeName><fullName>Alt name</fullName></alternativeName>
</protein>
<gene>
  <name type="primary">CYCS</name>
  <name type="synonym">CYC1</name>
</gene>
</entry>`)

	e, err := Decode(frame, nil, model.Options{})
	require.NoError(t, err)
	require.Equal(t, "Cytochrome c", e.Protein.Recommended.Full)
	require.Equal(t, []string{"CYC"}, e.Protein.Recommended.Short)
	require.Len(t, e.Protein.Alternative, 1)
	require.Equal(t, "Alt name", e.Protein.Alternative[0].Full)
	require.Len(t, e.Genes, 1)
	require.Equal(t, "CYCS", e.Genes[0].Name)
	require.Equal(t, []string{"CYC1"}, e.Genes[0].Synonyms)
}

func TestDecode_OrganismAndLineage(t *testing.T) {
	frame := []byte(`<entry dataset="Swiss-Prot" xmlns="x">
<accession>P00003</accession>
<organism>
  <name type="scientific">Homo sapiens</name>
  <name type="common">Human</name>
  <dbReference type="NCBI Taxonomy" id="9606"/>
  <lineage><taxon>Eukaryota</taxon><taxon>Metazoa</taxon></lineage>
</organism>
</entry>`)

	e, err := Decode(frame, nil, model.Options{})
	require.NoError(t, err)
	require.Equal(t, "Homo sapiens", e.Organism.Scientific)
	require.Equal(t, "Human", e.Organism.Common)
	require.Equal(t, int64(9606), e.Organism.TaxonID)
	require.Equal(t, []string{"Eukaryota", "Metazoa"}, e.Organism.Lineage)
}

func TestDecode_ReferenceJournalArticle(t *testing.T) {
	frame := []byte(`<entry dataset="Swiss-Prot" xmlns="x">
<accession>P00004</accession>
<reference key="1">
  <citation type="journal article" name="Nature" volume="10" first="1" last="9" date="2001-05-01">
    <title>Some title</title>
    <authorList><person name="Smith J."/><person name="Doe J."/></authorList>
  </citation>
</reference>
</entry>`)

	e, err := Decode(frame, nil, model.Options{})
	require.NoError(t, err)
	require.Len(t, e.References, 1)
	r := e.References[0]
	require.Equal(t, CitationJournalArticle, r.Kind)
	require.Equal(t, "Some title", r.Title)
	require.Equal(t, []string{"Smith J.", "Doe J."}, r.Authors)
	require.Equal(t, "Nature", r.Journal.Name)
	require.Equal(t, int64(2001), r.Journal.Year)
}

func TestDecode_ReferenceRemainingCitationKinds(t *testing.T) {
	frame := []byte(`<entry dataset="Swiss-Prot" xmlns="x">
<accession>P00004</accession>
<reference key="1"><citation type="online journal article" name="PLoS ONE" volume="3" date="2008-01-01"><title>Online</title></citation></reference>
<reference key="2"><citation type="patent" number="US1234567" date="1999-03-01"><title>Patent</title></citation></reference>
<reference key="3"><citation type="thesis" name="MIT" date="1995-01-01"><title>Thesis</title></citation></reference>
</entry>`)

	e, err := Decode(frame, nil, model.Options{})
	require.NoError(t, err)
	require.Len(t, e.References, 3)

	online := e.References[0]
	require.Equal(t, CitationOnlineJournalArticle, online.Kind)
	require.Equal(t, "PLoS ONE", online.Journal.Name)
	require.Equal(t, int64(2008), online.Journal.Year)

	patent := e.References[1]
	require.Equal(t, CitationPatent, patent.Kind)
	require.Equal(t, "US1234567", patent.Patent.Number)
	require.Equal(t, int64(1999), patent.Patent.Year)

	thesis := e.References[2]
	require.Equal(t, CitationThesis, thesis.Kind)
	require.Equal(t, "MIT", thesis.Thesis.Institute)
	require.Equal(t, int64(1995), thesis.Thesis.Year)
}

func TestDecode_CommentsKnownAndUnknownTopics(t *testing.T) {
	frame := []byte(`<entry dataset="Swiss-Prot" xmlns="x">
<accession>P00005</accession>
<comment type="function"><text>Does a thing.</text></comment>
<comment type="subcellular location"><subcellularLocation><location>Cytoplasm</location></subcellularLocation></comment>
<comment type="this is not a real topic"><text>ignored</text></comment>
</entry>`)

	e, err := Decode(frame, nil, model.Options{})
	require.NoError(t, err)
	require.Len(t, e.Comments, 2)
	require.Equal(t, CommentFunction, e.Comments[0].Kind)
	require.Equal(t, []string{"Does a thing."}, e.Comments[0].Text)
	require.Equal(t, CommentSubcellularLocation, e.Comments[1].Kind)
	require.Equal(t, []string{"Cytoplasm"}, e.Comments[1].Locations)
}

func TestDecode_OnlineInformationLinkRawByDefault(t *testing.T) {
	frame := []byte(`<entry dataset="Swiss-Prot" xmlns="x">
<accession>P00006</accession>
<comment type="online information"><link uri="https://example.org/P00006"/></comment>
</entry>`)

	e, err := Decode(frame, nil, model.Options{})
	require.NoError(t, err)
	require.Len(t, e.Comments, 1)
	require.Len(t, e.Comments[0].Links, 1)
	require.Equal(t, "https://example.org/P00006", e.Comments[0].Links[0].Raw)
	require.Nil(t, e.Comments[0].Links[0].Parsed)
}

func TestDecode_OnlineInformationLinkParsedWhenExposeURLType(t *testing.T) {
	frame := []byte(`<entry dataset="Swiss-Prot" xmlns="x">
<accession>P00006</accession>
<comment type="online information"><link uri="https://example.org/P00006"/></comment>
</entry>`)

	e, err := Decode(frame, nil, model.Options{ExposeURLType: true})
	require.NoError(t, err)
	require.Len(t, e.Comments[0].Links, 1)
	require.NotNil(t, e.Comments[0].Links[0].Parsed)
	require.Equal(t, "example.org", e.Comments[0].Links[0].Parsed.Host)
}

func TestDecode_CrossReferencesAndKeywords(t *testing.T) {
	frame := []byte(`<entry dataset="Swiss-Prot" xmlns="x">
<accession>P00006</accession>
<dbReference type="EMBL" id="X12345">
  <property type="protein sequence ID" value="AAA12345.1"/>
</dbReference>
<keyword id="KW-0002">3D-structure</keyword>
</entry>`)

	e, err := Decode(frame, nil, model.Options{})
	require.NoError(t, err)
	require.Len(t, e.DBRefs, 1)
	require.Equal(t, "EMBL", e.DBRefs[0].Type)
	require.Equal(t, "AAA12345.1", e.DBRefs[0].Properties["protein sequence ID"])
	require.Len(t, e.Keywords, 1)
	require.Equal(t, "3D-structure", e.Keywords[0].Name)
}

func TestDecode_FeatureRangeAndUnknownBound(t *testing.T) {
	frame := []byte(`<entry dataset="Swiss-Prot" xmlns="x">
<accession>P00007</accession>
<feature type="chain" description="Cytochrome c">
  <location><begin position="1"/><end status="unknown"/></location>
</feature>
</entry>`)

	e, err := Decode(frame, nil, model.Options{})
	require.NoError(t, err)
	require.Len(t, e.Features, 1)
	loc := e.Features[0].Location
	require.Equal(t, LocationRange, loc.Kind)
	require.Equal(t, int64(1), loc.Begin)
	require.Equal(t, int64(-1), loc.End)
}

func TestDecode_InterningSharesBackingArray(t *testing.T) {
	pool := intern.NewPool()
	frame1 := []byte(`<entry dataset="Swiss-Prot" xmlns="x"><accession>P99999</accession></entry>`)
	frame2 := []byte(`<entry dataset="Swiss-Prot" xmlns="x"><accession>P99999</accession></entry>`)

	e1, err := Decode(frame1, pool, model.Options{InternShortStrings: true})
	require.NoError(t, err)
	e2, err := Decode(frame2, pool, model.Options{InternShortStrings: true})
	require.NoError(t, err)
	require.Equal(t, e1.Accessions[0], e2.Accessions[0])
	require.Same(t, unsafe.StringData(e1.Accessions[0]), unsafe.StringData(e2.Accessions[0]))
}
