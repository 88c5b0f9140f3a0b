// Package campaignservice implements the crowd-labeling campaign engine.
//
// Layering:
// - domain: core entities, invariants, errors
// - application: commands/queries using explicit ports
// - ports: stable boundaries for persistence and the crowd marketplace
// - adapters: concrete HTTP, memory, and postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the crowd-labeling context.
// - Do not import adapters into domain/application.
// - The marketplace is reached only through the MarketplaceGateway port.
package campaignservice
