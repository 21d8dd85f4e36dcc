// Package services contains the core business logic.
// Services implement the driving ports and orchestrate driven ports.
//
// Services in this package:
//   - IngestService: document upload, extraction, chunking, embedding
//   - Retriever: query embedding and similarity retrieval
//   - ConversationManager: session history and prompt assembly
//   - ChatService: grounded question answering with citations
package services
