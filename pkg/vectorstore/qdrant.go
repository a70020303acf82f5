package vectorstore

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// QdrantStore delegates C4's similarity search to a Qdrant collection.
// Qdrant's cosine distance already scores in [-1, 1], so no rescaling is
// applied on the way out (see DESIGN.md's Open Question decision).
// Adapted from wessley-mvp's engine/semantic/store.go.
type QdrantStore struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
}

// NewQdrantStore dials addr and ensures collection exists with the given
// vector dimension.
func NewQdrantStore(ctx context.Context, addr, collection string, dim int) (*QdrantStore, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("vectorstore: dial qdrant %s: %w", addr, err)
	}
	s := &QdrantStore{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		collection:  collection,
	}
	if err := s.ensureCollection(ctx, dim); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *QdrantStore) Close() error { return s.conn.Close() }

func (s *QdrantStore) ProviderType() string { return "qdrant" }

func (s *QdrantStore) ensureCollection(ctx context.Context, dim int) error {
	list, err := s.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return &StoreError{Op: "list collections", Err: err}
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == s.collection {
			return nil
		}
	}

	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(dim),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return &StoreError{Op: "create collection", Err: err}
	}
	return nil
}

func (s *QdrantStore) Store(chunk RunbookChunk) error {
	return s.StoreBatch([]RunbookChunk{chunk})
}

func (s *QdrantStore) StoreBatch(chunks []RunbookChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	points := make([]*pb.PointStruct, len(chunks))
	for i, c := range chunks {
		payload := map[string]*pb.Value{
			"content":          {Kind: &pb.Value_StringValue{StringValue: c.Content}},
			"doc_id":           {Kind: &pb.Value_StringValue{StringValue: c.RunbookPath}},
			"sectionTitle":     {Kind: &pb.Value_StringValue{StringValue: c.SectionTitle}},
			"id":               {Kind: &pb.Value_StringValue{StringValue: c.ID}},
			"tags":             stringListValue(c.Tags),
			"applicableShapes": stringListValue(c.ApplicableShapes),
		}
		points[i] = &pb.PointStruct{
			Id:      &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: chunkPointUUID(c.ID)}},
			Vectors: &pb.Vectors{VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: c.Embedding}}},
			Payload: payload,
		}
	}

	wait := true
	_, err := s.points.Upsert(context.Background(), &pb.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return &StoreError{Op: fmt.Sprintf("upsert %d points", len(points)), Err: err}
	}
	return nil
}

func (s *QdrantStore) Count() (int, error) {
	resp, err := s.collections.CollectionInfo(context.Background(), &pb.GetCollectionInfoRequest{
		CollectionName: s.collection,
	})
	if err != nil {
		return 0, &StoreError{Op: "collection info", Err: err}
	}
	return int(resp.GetResult().GetPointsCount()), nil
}

func (s *QdrantStore) Delete(runbookPath string) error {
	wait := true
	_, err := s.points.Delete(context.Background(), &pb.DeletePoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{
				Filter: &pb.Filter{Must: []*pb.Condition{fieldMatch("doc_id", runbookPath)}},
			},
		},
	})
	if err != nil {
		return &StoreError{Op: fmt.Sprintf("delete by doc_id %s", runbookPath), Err: err}
	}
	return nil
}

func (s *QdrantStore) Search(queryEmbedding []float32, k int) ([]ScoredChunk, error) {
	if k <= 0 {
		k = 1
	}
	resp, err := s.points.Search(context.Background(), &pb.SearchPoints{
		CollectionName: s.collection,
		Vector:         queryEmbedding,
		Limit:          uint64(k),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, &StoreError{Op: "search", Err: err}
	}

	out := make([]ScoredChunk, len(resp.GetResult()))
	for i, r := range resp.GetResult() {
		payload := r.GetPayload()
		out[i] = ScoredChunk{
			Chunk: RunbookChunk{
				ID:               payload["id"].GetStringValue(),
				RunbookPath:      payload["doc_id"].GetStringValue(),
				SectionTitle:     payload["sectionTitle"].GetStringValue(),
				Content:          payload["content"].GetStringValue(),
				Tags:             stringListFromValue(payload["tags"]),
				ApplicableShapes: stringListFromValue(payload["applicableShapes"]),
			},
			SimilarityScore: float64(r.GetScore()),
		}
	}
	return out, nil
}

// stringListValue packs a []string into Qdrant's payload list-value type so
// it survives a round trip through Store/Search unchanged.
func stringListValue(items []string) *pb.Value {
	values := make([]*pb.Value, len(items))
	for i, item := range items {
		values[i] = &pb.Value{Kind: &pb.Value_StringValue{StringValue: item}}
	}
	return &pb.Value{Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{Values: values}}}
}

// stringListFromValue is stringListValue's inverse; a missing or
// non-list payload field yields nil rather than an error, since older
// points stored before tags/applicableShapes were tracked won't have it.
func stringListFromValue(v *pb.Value) []string {
	list := v.GetListValue()
	if list == nil {
		return nil
	}
	out := make([]string, len(list.GetValues()))
	for i, item := range list.GetValues() {
		out[i] = item.GetStringValue()
	}
	return out
}

func fieldMatch(key, value string) *pb.Condition {
	return &pb.Condition{
		ConditionOneOf: &pb.Condition_Field{
			Field: &pb.FieldCondition{Key: key, Match: &pb.Match{MatchValue: &pb.Match_Keyword{Keyword: value}}},
		},
	}
}

// chunkPointUUID derives a deterministic UUID-shaped point id from a chunk
// id so re-ingestion upserts are idempotent. Qdrant point ids must be a
// UUID or unsigned integer; chunk ids are SHA-256 hex digests, not UUIDs.
func chunkPointUUID(chunkID string) string {
	return uuidFromHex(chunkID)
}
