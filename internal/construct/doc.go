/*
Package construct defines the vocabulary shared by every store of the
topic-map engine: process-unique construct handles, the closed set of
construct kinds, references that pair a handle with its kind, locators and
the sentinel errors stores report.

Stores never hold pointers to each other's records. Every cross reference is
an ID, so removing a construct from one store cannot leave a dangling pointer
in another; at worst a stale ID, which the owning store reports as unknown.
*/
package construct
