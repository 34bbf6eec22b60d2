// Package distributionengine implements batched, all-or-nothing distribution
// of uniquely-owned and quantity-bearing assets from the operator's holding to
// many recipients, against external asset registries the engine has been
// granted transfer authorization on.
package distributionengine
