package topicmodel

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"os"

	"corpusengine"
)

// Model file format, spec §6: a 5-byte magic, a 5-byte weighting tag, a
// 4-byte model-type tag, an opaque payload holding the vocabulary, the Gibbs
// counters and the document names (per-token topic assignments are not
// included), and a small metadata tail. The original engine's metadata tail is
// a Python pickle dictionary; no pickle-writing library exists anywhere in
// the retrieval pack, so the tail here is a self-describing gob record
// instead (see DESIGN.md) carrying the same documented keys.
var (
	magicBytes   = [5]byte{'L', 'D', 'A', 0, 0}
	weightOneTag = [5]byte{'o', 'n', 'e', 0, 0}
	weightIDFTag = [5]byte{'i', 'd', 'f', 0, 0}
	modelTypeTag = [4]byte{'T', 'P', 'T', 'K'}
)

type gobPayload struct {
	VocabList       []string
	DocFreq         map[string]uint64
	RemovedTop      []string
	K               int
	FixedK          int
	AlphaPerTopic   []float64
	TopicWordCounts [][]int
	TopicTotal      []int
	TableCounts     []int
	LiveTopics      []bool
	DocNames        []string
	DocTopicCounts  [][]int
	DocTokens       [][]string // only populated when full=true
	IterationsDone  int
}

type metadataTail struct {
	TW       string
	MinCF    uint64
	MinDF    uint64
	RmTop    int
	InitialK int
	Seed     int64
	Alpha    float64
	Eta      float64
	Gamma    float64
	Version  string
}

// Save implements save(path, full): serialises the trained model to path.
// When full is true the original document token lists are included; when
// false the vocabulary, the Gibbs counters, the document names and their
// topic counts are written without the token lists. Per-token topic
// assignments are written in neither case. Returns the number of bytes
// written.
func (m *TopicModel) Save(path string, full bool) (uint64, error) {
	if m.state < StateTrained {
		return 0, corpusengine.NewError(corpusengine.KindModelNotTrained, "topicmodel.Save", "model is not trained", nil)
	}

	payload := gobPayload{
		VocabList:       m.vocabList,
		DocFreq:         m.docFreq,
		RemovedTop:      m.removedTop,
		K:               m.k,
		FixedK:          m.fixedK,
		AlphaPerTopic:   m.alphaPerTopic,
		TopicWordCounts: m.topicWordCounts,
		TopicTotal:      m.topicTotal,
		TableCounts:     m.tableCounts,
		LiveTopics:      m.liveTopics,
		DocTopicCounts:  m.docTopicCounts,
		IterationsDone:  m.iterationsDone,
	}
	for _, doc := range m.documents {
		payload.DocNames = append(payload.DocNames, doc.Name)
		if full {
			payload.DocTokens = append(payload.DocTokens, doc.Tokens)
		}
	}

	var payloadBuf bytes.Buffer
	if err := gob.NewEncoder(&payloadBuf).Encode(payload); err != nil {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Save", "failed to encode model payload", err)
	}

	tail := metadataTail{
		TW:       "one",
		MinCF:    m.minCF,
		MinDF:    m.minDF,
		RmTop:    m.topNRemoval,
		InitialK: m.initialK,
		Seed:     m.seed,
		Alpha:    m.alpha,
		Eta:      m.eta,
		Gamma:    m.gamma,
		Version:  m.trainedVersion,
	}
	if m.fixedK > 0 {
		tail.InitialK = m.fixedK
	}
	if m.useIDF {
		tail.TW = "idf"
	}
	var tailBuf bytes.Buffer
	if err := gob.NewEncoder(&tailBuf).Encode(tail); err != nil {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Save", "failed to encode metadata tail", err)
	}

	var out bytes.Buffer
	out.Write(magicBytes[:])
	if m.useIDF {
		out.Write(weightIDFTag[:])
	} else {
		out.Write(weightOneTag[:])
	}
	out.Write(modelTypeTag[:])
	binary.Write(&out, binary.BigEndian, uint64(payloadBuf.Len()))
	out.Write(payloadBuf.Bytes())
	binary.Write(&out, binary.BigEndian, uint64(tailBuf.Len()))
	out.Write(tailBuf.Bytes())

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Save", "failed to write model file", err)
	}
	return uint64(out.Len()), nil
}

// Load implements load(path): deserialises a model previously written by
// Save. Fails with ModelFileInvalid on a magic/tag mismatch or an
// unreadable payload. A loaded model always starts in StateTrained; there
// is no load that lands in StatePrepared, and the per-token topic
// assignments that Train works on are not restored.
func (m *TopicModel) Load(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Load", "failed to read model file", err)
	}
	if len(data) < 14 {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Load", "file too short to contain a header", nil)
	}
	if !bytes.Equal(data[0:5], magicBytes[:]) {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Load", "magic mismatch", nil)
	}
	weightTag := data[5:10]
	useIDF := bytes.Equal(weightTag, weightIDFTag[:])
	if !useIDF && !bytes.Equal(weightTag, weightOneTag[:]) {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Load", "weighting tag mismatch", nil)
	}
	if !bytes.Equal(data[10:14], modelTypeTag[:]) {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Load", "model type tag mismatch", nil)
	}

	r := bytes.NewReader(data[14:])
	var payloadLen uint64
	if err := binary.Read(r, binary.BigEndian, &payloadLen); err != nil {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Load", "truncated payload length", err)
	}
	payloadBytes := make([]byte, payloadLen)
	if _, err := r.Read(payloadBytes); err != nil {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Load", "truncated payload", err)
	}
	var payload gobPayload
	if err := gob.NewDecoder(bytes.NewReader(payloadBytes)).Decode(&payload); err != nil {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Load", "failed to decode payload", err)
	}

	var tailLen uint64
	if err := binary.Read(r, binary.BigEndian, &tailLen); err != nil {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Load", "truncated metadata length", err)
	}
	tailBytes := make([]byte, tailLen)
	if _, err := r.Read(tailBytes); err != nil {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Load", "truncated metadata", err)
	}
	var tail metadataTail
	if err := gob.NewDecoder(bytes.NewReader(tailBytes)).Decode(&tail); err != nil {
		return 0, corpusengine.NewError(corpusengine.KindModelFileInvalid, "topicmodel.Load", "failed to decode metadata", err)
	}

	m.useIDF = useIDF
	m.vocabList = payload.VocabList
	m.vocab = make(map[string]int, len(m.vocabList))
	for i, tok := range m.vocabList {
		m.vocab[tok] = i
	}
	m.docFreq = payload.DocFreq
	m.removedTop = payload.RemovedTop
	m.k = payload.K
	m.fixedK = payload.FixedK
	m.alphaPerTopic = payload.AlphaPerTopic
	m.topicWordCounts = payload.TopicWordCounts
	m.topicTotal = payload.TopicTotal
	m.tableCounts = payload.TableCounts
	m.liveTopics = payload.LiveTopics
	m.docTopicCounts = payload.DocTopicCounts
	m.iterationsDone = payload.IterationsDone

	m.documents = m.documents[:0]
	m.docNameIndex = make(map[string]int, len(payload.DocNames))
	for i, name := range payload.DocNames {
		doc := Document{Name: name}
		if i < len(payload.DocTokens) {
			doc.Tokens = payload.DocTokens[i]
		}
		m.docNameIndex[name] = len(m.documents)
		m.documents = append(m.documents, doc)
	}

	m.minCF, m.minDF, m.topNRemoval = tail.MinCF, tail.MinDF, tail.RmTop
	m.seed, m.alpha, m.eta, m.gamma = tail.Seed, tail.Alpha, tail.Eta, tail.Gamma
	m.trainedVersion = tail.Version
	if m.fixedK == 0 {
		m.initialK = tail.InitialK
	}

	m.state = StateTrained
	return uint64(len(data)), nil
}
